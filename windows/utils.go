// Copyright 2025 Magnus Pierre
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

package windows

import (
	"context"
	"time"
)

// defaultFetchTimeout bounds the dataset fetch when no timeout is configured.
const defaultFetchTimeout = 60 * time.Second

// createTimeoutContext returns a context for the dataset fetch.
// A timeout <= 0 selects defaultFetchTimeout.
func createTimeoutContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}
