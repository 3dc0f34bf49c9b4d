// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package extract turns heterogeneous source files into SourceDocuments.
//
// A closed set of extractors handles the corpus formats: paginated documents
// (pdf), word-processor documents (docx), plain text (txt) and email messages
// (eml, msg). The Registry dispatches by file extension.
//
// # Failure Policy
//
// Extraction failures are always local to one file. A corrupt file, a bad
// encoding or a missing conversion tool produces an error for that file only;
// the ingestion batch logs a skip and continues with the rest. Nothing in
// this package aborts a batch.
//
// # External Tools
//
// The pdf and msg extractors convert through external tools (poppler's
// pdftotext/pdfinfo, msgconvert) behind the CommandRunner seam, so tests can
// run without them installed.
package extract
