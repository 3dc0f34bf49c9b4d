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


// Package ingestion builds the corpus: it walks a directory, extracts and
// chunks every supported file, embeds chunk texts in batches, and stores the
// resulting entries.
//
// # Failure Isolation
//
// The pipeline never lets one bad input sink a run. A file that cannot be
// extracted is logged and skipped; an embedding batch that fails after
// retries is logged and dropped whole, leaving the store exactly as it was.
// Run returns an error only for walk failures and context cancellation.
//
// # Idempotence
//
// Entry IDs derive from chunk content, so re-running ingestion over an
// unchanged corpus rewrites the same keys with the same values. Changed
// files contribute new entries; unchanged ones keep their insertion order.
package ingestion
