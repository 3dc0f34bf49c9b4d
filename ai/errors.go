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


package ai

import (
	"errors"
	"strings"
)

var (
	// ErrRateLimited indicates the service rejected the call due to quota or
	// rate limiting. Callers may back off and retry.
	ErrRateLimited = errors.New("service rate limited")

	// ErrUnavailable indicates a transient service failure.
	ErrUnavailable = errors.New("service unavailable")

	// ErrInvalidInput indicates the service rejected the request contents.
	ErrInvalidInput = errors.New("invalid input")
)

// quotaKeywords are substrings that identify quota and rate-limit failures in
// upstream error text. The generative API surfaces these only as message
// strings, so keyword matching is the contract for translating them into the
// friendlier user-facing wording.
var quotaKeywords = []string{
	"quota",
	"rate limit",
	"ratelimit",
	"resource has been exhausted",
	"resource_exhausted",
	"429",
}

// IsQuotaError reports whether err looks like a quota or rate-limit failure,
// either by error kind or by upstream message text.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, kw := range quotaKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
