// Package pipeline implements the text-to-HTML link page pipeline.
//
// Stages, in order:
//   - Text preprocessing (line ending normalization, optional blank line compression)
//   - Record parsing: blank-line separated blocks of url, label, description
//   - Document rendering: an x/net/html node tree, one <article> per link
//   - Optional pretty printing of the serialized tree
//
// Parsing is permissive by default: blocks that do not hold exactly three
// non-empty cells are skipped and reported in ParseResult.Skipped. Strict
// parsing turns the first such block into a *BlockError.
//
// Rendering never concatenates user text into markup. Titles, urls, labels
// and descriptions become text or attribute nodes and are escaped by the
// serializer. Markdown descriptions go through goldmark without raw HTML.
package pipeline
