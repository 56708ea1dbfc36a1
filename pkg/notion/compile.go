package notion

import (
	"notion-cms/pkg/ast"
	"notion-cms/pkg/ids"
)

// CompileOptions configures CompileBlocks.
type CompileOptions struct {
	// Meta is attached to the Article as is.
	Meta ast.Meta
	// OnWarning, if set, receives a warning for every dropped block.
	OnWarning WarningFunc
}

// CompileBlocks compiles a hydrated block tree into an Article. The output is
// a pure function of blocks and opts.Meta.
func CompileBlocks(blocks []Block, opts CompileOptions) *ast.Article {
	c := &compiler{
		headingIDs: ids.NewAllocator(),
		onWarning:  opts.OnWarning,
	}
	return &ast.Article{
		Meta: opts.Meta,
		Body: c.compile(blocks),
	}
}

// compiler carries the per-document state shared by every level of the
// recursion. A new one is made for each CompileBlocks call.
type compiler struct {
	headingIDs *ids.Allocator
	onWarning  WarningFunc
}

func (c *compiler) warn(b Block, code WarningCode, message string) {
	if c.onWarning == nil {
		return
	}
	c.onWarning(Warning{
		Code:      code,
		Message:   message,
		BlockID:   b.ID,
		BlockType: b.Type,
	})
}

// compile maps one level of siblings. It never returns nil.
func (c *compiler) compile(blocks []Block) []ast.Node {
	body := make([]ast.Node, 0, len(blocks))

	for i := 0; i < len(blocks); i++ {
		b := blocks[i]

		if isListItem(b.Type) {
			end := i
			for end < len(blocks) && blocks[end].Type == b.Type {
				end++
			}
			body = append(body, c.list(blocks[i:end]))
			i = end - 1
			continue
		}

		if node := c.block(b); node != nil {
			body = append(body, node)
		}
	}

	return body
}

// block maps a single non-list block, returning nil when it is dropped.
func (c *compiler) block(b Block) ast.Node {
	if level, ok := headingLevel(b.Type); ok {
		return c.heading(b, level)
	}

	switch b.Type {
	case "paragraph":
		text := RichTextToSpans(richText(b))
		if ast.IsBlank(text) {
			return nil
		}
		return &ast.Paragraph{Text: text}
	case "code":
		return c.code(b)
	case "image":
		return c.image(b)
	case "divider":
		return &ast.Divider{}
	case "table":
		return c.table(b)
	case "embed":
		return c.embed(b)
	case "bookmark":
		return c.bookmark(b)
	case "quote":
		return c.quote(b)
	case "toggle":
		return c.toggle(b)
	case "callout":
		return c.callout(b)
	}

	c.warn(b, WarningUnsupportedBlock, "Block type is not supported and was ignored.")
	return nil
}

func (c *compiler) heading(b Block, level int) ast.Node {
	text := RichTextToSpans(richText(b))
	base := ids.Slugify(ast.ToPlainText(text))
	if base == "" {
		base = ids.Fallback
	}
	return &ast.Heading{
		Level: level,
		ID:    c.headingIDs.Next(base),
		Text:  text,
	}
}

func (c *compiler) code(b Block) ast.Node {
	payload := b.Payload()
	language, ok := payload.String("language")
	if !ok {
		language = "plain"
	}
	return &ast.Code{
		Language: language,
		Code:     ast.ToPlainText(RichTextToSpans(richText(b))),
		Caption:  caption(payload),
	}
}

func (c *compiler) image(b Block) ast.Node {
	payload := b.Payload()
	src, ok := fileURL(payload)
	if !ok {
		c.warn(b, WarningMissingImageURL, "Image block is missing a file or external URL.")
		return nil
	}
	return &ast.Image{
		Src:     src,
		Caption: caption(payload),
	}
}

func (c *compiler) table(b Block) ast.Node {
	rows := make([]ast.TableRow, 0, len(b.Children))
	for _, child := range b.Children {
		if child.Type != "table_row" {
			c.warn(child, WarningUnsupportedTableStructure, "Table child is not a table_row and was ignored.")
			continue
		}
		cells, ok := tableRowCells(child)
		if !ok {
			c.warn(child, WarningUnsupportedTableStructure, "Table row is missing cells and was ignored.")
			continue
		}

		row := ast.TableRow{Cells: make([][]ast.Span, 0, len(cells))}
		blank := true
		for _, cell := range cells {
			spans := RichTextToSpans(cell)
			if !ast.IsBlank(spans) {
				blank = false
			}
			row.Cells = append(row.Cells, spans)
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}

	return &ast.Table{
		HasHeader: b.Payload().Bool("has_column_header"),
		Rows:      rows,
	}
}

func (c *compiler) embed(b Block) ast.Node {
	payload := b.Payload()
	url, _ := payload.String("url")
	if url == "" {
		c.warn(b, WarningMissingEmbedURL, "Embed block is missing a URL and was dropped.")
		return nil
	}
	return &ast.Embed{
		URL:     url,
		Caption: caption(payload),
	}
}

func (c *compiler) bookmark(b Block) ast.Node {
	payload := b.Payload()
	url, _ := payload.String("url")
	if url == "" {
		c.warn(b, WarningMissingBookmarkURL, "Bookmark block is missing a URL and was dropped.")
		return nil
	}
	title, _ := payload.String("title")
	description, _ := payload.String("description")
	return &ast.Bookmark{
		URL:         url,
		Title:       title,
		Description: description,
	}
}

func (c *compiler) quote(b Block) ast.Node {
	children := c.leadAndChildren(b)
	if len(children) == 0 {
		return nil
	}
	return &ast.Quote{Children: children}
}

func (c *compiler) toggle(b Block) ast.Node {
	summary := RichTextToSpans(richText(b))
	if ast.IsBlank(summary) {
		c.warn(b, WarningEmptyToggle, "Toggle summary is empty; block was dropped.")
		return nil
	}
	return &ast.Toggle{
		Summary:  summary,
		Children: c.compile(b.Children),
	}
}

func (c *compiler) callout(b Block) ast.Node {
	payload := b.Payload()
	title := RichTextToSpans(richText(b))
	color, _ := payload.String("color")
	icon, _ := payload.Object("icon").String("emoji")

	node := &ast.Admonition{
		Kind:     calloutKind(color),
		Tone:     color,
		Icon:     icon,
		Children: c.compile(b.Children),
	}
	if !ast.IsBlank(title) {
		node.Title = title
	}
	return node
}

// list compiles a run of consecutive list items sharing one type.
func (c *compiler) list(items []Block) ast.Node {
	node := &ast.List{
		Ordered: items[0].Type == "numbered_list_item",
		Items:   make([]ast.ListItem, 0, len(items)),
	}
	for _, item := range items {
		node.Items = append(node.Items, ast.ListItem{Children: c.leadAndChildren(item)})
	}
	return node
}

// leadAndChildren is the block's own text as a paragraph, if it has any,
// followed by its compiled children.
func (c *compiler) leadAndChildren(b Block) []ast.Node {
	children := make([]ast.Node, 0, 1+len(b.Children))
	if text := RichTextToSpans(richText(b)); !ast.IsBlank(text) {
		children = append(children, &ast.Paragraph{Text: text})
	}
	return append(children, c.compile(b.Children)...)
}

func richText(b Block) []RichText {
	runs, _ := b.Payload().RichText("rich_text")
	return runs
}

// caption returns the payload's caption, or nil when it has no visible text.
func caption(payload Object) []ast.Span {
	runs, ok := payload.RichText("caption")
	if !ok || len(runs) == 0 {
		return nil
	}
	spans := RichTextToSpans(runs)
	if ast.IsBlank(spans) {
		return nil
	}
	return spans
}

// tableRowCells requires every cell to be an array of runs.
func tableRowCells(row Block) ([][]RichText, bool) {
	items, ok := row.Payload().Array("cells")
	if !ok {
		return nil, false
	}
	cells := make([][]RichText, 0, len(items))
	for _, item := range items {
		runs, ok := decodeRuns(item)
		if !ok {
			return nil, false
		}
		cells = append(cells, runs)
	}
	return cells, true
}

func isListItem(typ string) bool {
	return typ == "bulleted_list_item" || typ == "numbered_list_item"
}

func headingLevel(typ string) (int, bool) {
	switch typ {
	case "heading_1":
		return 1, true
	case "heading_2":
		return 2, true
	case "heading_3":
		return 3, true
	case "heading_4":
		return 4, true
	case "heading_5":
		return 5, true
	case "heading_6":
		return 6, true
	}
	return 0, false
}

func calloutKind(color string) ast.AdmonitionKind {
	switch color {
	case "yellow", "orange", "red":
		return ast.KindWarning
	case "blue", "purple":
		return ast.KindInfo
	case "green":
		return ast.KindTip
	default:
		return ast.KindNote
	}
}
