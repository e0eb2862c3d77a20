package thml2epub

// ruleAction describes what the transformer does with a recognized tag.
type ruleAction int

const (
	// actPass keeps the tag under the same name with filtered attributes.
	actPass ruleAction = iota
	// actRename replaces the tag name, keeping filtered attributes.
	actRename
	// actUnwrap drops the tag but keeps its children in place.
	actUnwrap
	// actDelete drops the tag together with its children.
	actDelete
)

// rule is one entry of the tag handling table.
type rule struct {
	action ruleAction
	to     string          // target tag name for actRename
	class  string          // class attribute forced onto the output element
	attrs  map[string]bool // extra attributes copied besides baseAttrs
	brEnd  bool            // append a <br/> after the children (ThML <l>)
}

// baseAttrs are the attributes copied for every recognized tag. The style
// attribute is deliberately dropped; inline styles in archive sources
// mostly fight with reader stylesheets.
var baseAttrs = map[string]bool{
	"id":    true,
	"class": true,
	"lang":  true,
	"title": true,
	"dir":   true,
}

// tableAttrs are the additional attributes copied for table-family tags.
var tableAttrs = map[string]bool{
	"align":       true,
	"valign":      true,
	"border":      true,
	"cellspacing": true,
	"cellpadding": true,
	"rowspan":     true,
	"colspan":     true,
	"width":       true,
}

// anchorAttrs are the additional attributes copied for <a>.
var anchorAttrs = map[string]bool{
	"href": true,
	"name": true,
}

// imgAttrs are the additional attributes copied for <img>.
var imgAttrs = map[string]bool{
	"src":    true,
	"alt":    true,
	"height": true,
	"width":  true,
}

// tagRules maps source tag names (lowercased, as produced by the lenient
// parser) to their handling. Tags absent from the table pass through
// as-is with only event-handler attributes stripped.
var tagRules = map[string]rule{
	// ThML structure. The html/head/body wrappers of the output document
	// are rebuilt by the transformer, so the ThML equivalents unwrap.
	"thml":      {action: actUnwrap},
	"thml.body": {action: actUnwrap},
	"div1":      {action: actRename, to: "div"},
	"div2":      {action: actRename, to: "div"},
	"div3":      {action: actRename, to: "div"},
	"div4":      {action: actRename, to: "div"},
	"div5":      {action: actRename, to: "div"},
	"verse":     {action: actRename, to: "div", class: "verse"},
	"scripture": {action: actRename, to: "blockquote"},
	"scripcom":  {action: actRename, to: "div", class: "scripCom"},
	"l":         {action: actRename, to: "span", class: "line", brEnd: true},
	"pb":        {action: actRename, to: "br"},
	"name":      {action: actRename, to: "span"},
	"attr":      {action: actRename, to: "span"},

	// Notes stay inline: the note text is retained in place rather than
	// moved into a hyperlinked endnote. Scripture references are kept as
	// plain text without citation resolution.
	"note":     {action: actRename, to: "span", class: "note"},
	"scripref": {action: actRename, to: "span", class: "scripRef"},

	"unclear": {action: actUnwrap},
	"added":   {action: actUnwrap},
	"deleted": {action: actDelete},

	// Index markers: cross-reference indices are not generated.
	"insertindex": {action: actDelete},

	// ThML head bookkeeping with no display value.
	"generalinfo":       {action: actDelete},
	"printsourceinfo":   {action: actDelete},
	"publisherid":       {action: actDelete},
	"authorid":          {action: actDelete},
	"bookid":            {action: actDelete},
	"version":           {action: actDelete},
	"series":            {action: actDelete},
	"editorialcomments": {action: actDelete},
	"revisionhistory":   {action: actDelete},
	"status":            {action: actDelete},
	"comments":          {action: actDelete},
	"electronicedinfo":  {action: actUnwrap},

	// HTML head leftovers that must not reach the content document.
	"link":   {action: actDelete},
	"script": {action: actDelete},

	// Plain HTML block tags.
	"p":          {action: actPass},
	"div":        {action: actPass},
	"h1":         {action: actPass},
	"h2":         {action: actPass},
	"h3":         {action: actPass},
	"h4":         {action: actPass},
	"h5":         {action: actPass},
	"h6":         {action: actPass},
	"blockquote": {action: actPass},
	"address":    {action: actPass},
	"pre":        {action: actPass},
	"hr":         {action: actPass},
	"br":         {action: actPass},
	"ul":         {action: actPass},
	"ol":         {action: actPass},
	"li":         {action: actPass},

	// Tables.
	"table":    {action: actPass, attrs: tableAttrs},
	"tbody":    {action: actPass, attrs: tableAttrs},
	"thead":    {action: actPass, attrs: tableAttrs},
	"colgroup": {action: actPass, attrs: tableAttrs},
	"col":      {action: actPass, attrs: tableAttrs},
	"tr":       {action: actPass, attrs: tableAttrs},
	"td":       {action: actPass, attrs: tableAttrs},
	"th":       {action: actPass, attrs: tableAttrs},

	// Inline HTML.
	"a":      {action: actPass, attrs: anchorAttrs},
	"img":    {action: actPass, attrs: imgAttrs},
	"b":      {action: actPass},
	"i":      {action: actPass},
	"em":     {action: actPass},
	"strong": {action: actPass},
	"small":  {action: actPass},
	"span":   {action: actPass},
	"sub":    {action: actPass},
	"sup":    {action: actPass},
	"abbr":   {action: actPass},
	"cite":   {action: actPass},
}
