// Package chunk normalizes extracted text and cuts it into bounded,
// overlapping chunks for embedding.
//
// Cleaning runs three passes in a fixed order: hyphenated words split across
// line breaks are rejoined, single newlines inside paragraphs become spaces,
// and runs of blank lines collapse to one newline. Splitting then cuts at
// the highest-preference separator available inside each window, carrying an
// overlap into the next chunk so boundary context survives retrieval.
//
// Everything in this package is pure string work: the same document always
// produces the same chunks, which keeps content-derived chunk IDs stable
// across re-ingestion.
package chunk
