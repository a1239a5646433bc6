// Copyright 2019 Yunion
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

package imagestate

import (
	"yunion.io/x/pkg/errors"
)

const (
	// ErrMoreThanOne is the ambiguous lookup outcome. The text doubles as
	// the user-facing diagnostic, so keep it stable.
	ErrMoreThanOne = errors.Error("Found more than one image with given name")

	ErrInvalidParams = errors.Error("invalid parameters")

	ErrImageVanished = errors.Error("image vanished")
	ErrTaskVanished  = errors.Error("task vanished")
	ErrTaskFailed    = errors.Error("task failed")
)
