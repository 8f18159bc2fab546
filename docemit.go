package blend

import (
	"fmt"
	"html"
	"strings"
)

// RenderDoc renders the schema (plus, when development is true, the block
// index) as a human-readable HTML page. It is a pure function of the
// header, schema and block index and never touches materialized objects.
func (f *File) RenderDoc(development bool) string {
	return renderDoc(f.header, f.schema, f.blocks, development)
}

func renderDoc(h *Header, schema *Schema, blocks []*block, development bool) string {
	var b strings.Builder

	b.WriteString("<html>\n<head>\n<title>Save file schema</title>\n<style>\n")
	b.WriteString("body {font-family:verdana;font-size: 14px;}\n")
	b.WriteString("table {font-size: 12px;border-collapse:collapse;}\n")
	b.WriteString("thead {background:#CCC;}\n")
	b.WriteString("th {padding:5px;}\n")
	b.WriteString("td {border-bottom:1px solid #CCC;padding:5px;}\n")
	b.WriteString("</style>\n</head>\n<body>\n")

	fmt.Fprintf(&b, "<h1><a name='TOP'>Object types in version %s file</a></h1>\n", html.EscapeString(h.Version))

	if development {
		renderBlockIndex(&b, blocks)
	}

	renderStructureIndex(&b, schema)
	renderStructureTables(&b, schema, h.PointerWidth)

	b.WriteString("</body></html>")
	return b.String()
}

func renderBlockIndex(b *strings.Builder, blocks []*block) {
	b.WriteString("<h2>Summary</h2>\n<ul>\n")
	b.WriteString("<li><a href='#fbd'>File blocks data</a></li>\n")
	b.WriteString("<li><a href='#si'>SDNA index</a></li>\n")
	b.WriteString("<li><a href='#sm'>SDNA mapping</a></li>\n")
	b.WriteString("</ul>\n")

	b.WriteString("<h2><a name='fbd'>File blocks data</a></h2>\n<table>\n<thead>\n")
	b.WriteString("<tr><th>CODE</th><th>SDNA ID</th><th>STRUCT COUNT</th><th>SIZE</th><th>OLD ADDRESS</th></tr>\n")
	b.WriteString("</thead>\n<tbody>\n")
	for _, bl := range blocks {
		fmt.Fprintf(b, "<tr><td>%s</td><td><a href='#SDNA_ID_%d'>%d</a></td><td>%d</td><td>%d</td><td>0x%x</td></tr>\n",
			html.EscapeString(bl.Code), bl.SDNAIndex, bl.SDNAIndex, bl.Count, bl.Size, bl.OldAddress)
	}
	b.WriteString("</tbody>\n</table>\n")
}

func renderStructureIndex(b *strings.Builder, schema *Schema) {
	b.WriteString("<h2><a name='si'>SDNA index</a></h2>\n<p>\n")
	for i, def := range schema.Structures {
		fmt.Fprintf(b, "<b>(%d)</b> <a href='#SDNA_ID_%d'>%s</a>, ", i, i, html.EscapeString(schema.Types[def.TypeIndex]))
	}
	b.WriteString("</p>\n")
}

func renderStructureTables(b *strings.Builder, schema *Schema, ptrWidth int) {
	b.WriteString("<h2><a name='sm'>SDNA mapping</a></h2>\n")

	// structIndexByType lets a field's type, when itself a known structure,
	// link to that structure's own section.
	structIndexByType := make(map[string]int, len(schema.Structures))
	for i, def := range schema.Structures {
		structIndexByType[schema.Types[def.TypeIndex]] = i
	}

	for i, def := range schema.Structures {
		fmt.Fprintf(b, "<h3><a name='SDNA_ID_%d'>(%d) %s</a> <a href='#TOP'>top</a></h3>\n",
			i, i, html.EscapeString(schema.Types[def.TypeIndex]))
		b.WriteString("<table>\n<thead>\n<tr><th>TYPE</th><th>NAME</th><th>SIZE</th><th>OFFSET</th></tr>\n</thead>\n<tbody>\n")

		offset := 0
		for _, field := range def.Fields {
			typeName := schema.Types[field.TypeIndex]
			rawName := schema.Names[field.NameIndex]
			fd := parseFieldName(rawName)

			size := int(schema.TypeSizes[field.TypeIndex])
			if fd.isPointer {
				size = ptrWidth
			}
			factor := 1
			for _, d := range fd.dims {
				factor *= d
			}

			if j, ok := structIndexByType[typeName]; ok {
				fmt.Fprintf(b, "<tr><td><a href='#SDNA_ID_%d'>%s</a></td>", j, html.EscapeString(typeName))
			} else {
				fmt.Fprintf(b, "<tr><td>%s</td>", html.EscapeString(typeName))
			}
			fmt.Fprintf(b, "<td>%s</td><td>%d</td><td>%d</td></tr>\n",
				html.EscapeString(rawName), size*factor, offset)

			offset += size * factor
		}
		b.WriteString("</tbody>\n</table>\n")
	}
}
