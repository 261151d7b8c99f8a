// Copyright 2025 RobotU AI
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

// Package search provides semantic search over the molecule index.
//
// A query is embedded and compared against the stored chunk vectors.
// The scan deliberately over-fetches a wide candidate pool before
// metadata filters run, so filtering does not starve the result set:
// post-filter truncation to k keeps recall high even with selective
// filters.
package search
