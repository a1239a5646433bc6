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
	"fmt"
	"strings"

	"yunion.io/x/jsonutils"
	"yunion.io/x/pkg/tristate"
)

// SResult is the outcome of one reconciliation. Result is tri-valued:
// true, false, or none meaning "dry-run, would have changed". Changes maps
// the image name to old/new attribute snapshots and accumulates as checks
// run. Comment lines are append-only so every mismatch is reported.
type SResult struct {
	Name    string
	Changes *jsonutils.JSONDict
	Result  tristate.TriState

	comments []string
}

func newResult(name string) *SResult {
	return &SResult{
		Name:    name,
		Changes: jsonutils.NewDict(),
		Result:  tristate.True,
	}
}

func (ret *SResult) appendCommentf(format string, args ...interface{}) {
	ret.comments = append(ret.comments, fmt.Sprintf(format, args...))
}

func (ret *SResult) Comment() string {
	return strings.Join(ret.comments, "\n")
}

// markFailed downgrades the result, remapping failure to "unknown" under
// dry-run.
func (ret *SResult) markFailed(test bool) {
	if test {
		ret.Result = tristate.None
	} else {
		ret.Result = tristate.False
	}
}

// recordCreated notes a freshly created object: old is null, new carries
// the backend-assigned id under idKey.
func (ret *SResult) recordCreated(idKey, id string) {
	change := jsonutils.NewDict()
	newAttrs := jsonutils.NewDict()
	newAttrs.Add(jsonutils.NewString(id), idKey)
	change.Add(newAttrs, "new")
	change.Add(jsonutils.JSONNull, "old")
	ret.Changes.Add(change, ret.Name)
}

// recordChange records an old/new attribute pair under the image name,
// creating the nested snapshots as needed.
func (ret *SResult) recordChange(key string, oldValue, newValue jsonutils.JSONObject) {
	change, err := ret.Changes.Get(ret.Name)
	if err != nil {
		change = jsonutils.NewDict()
		ret.Changes.Add(change, ret.Name)
	}
	ret.setSnapshotAttr(change, "old", key, oldValue)
	ret.setSnapshotAttr(change, "new", key, newValue)
}

// setNewAttr records an attribute in the new snapshot only.
func (ret *SResult) setNewAttr(key string, value jsonutils.JSONObject) {
	change, err := ret.Changes.Get(ret.Name)
	if err != nil {
		change = jsonutils.NewDict()
		ret.Changes.Add(change, ret.Name)
	}
	ret.setSnapshotAttr(change, "new", key, value)
}

func (ret *SResult) setSnapshotAttr(change jsonutils.JSONObject, side, key string, value jsonutils.JSONObject) {
	changeDict := change.(*jsonutils.JSONDict)
	snapshot, err := changeDict.Get(side)
	if err != nil || snapshot == jsonutils.JSONNull {
		snapshot = jsonutils.NewDict()
		changeDict.Set(side, snapshot)
	}
	snapshot.(*jsonutils.JSONDict).Set(key, value)
}

// ToJSON renders the result in the host runtime's shape: result is null
// when the reconciliation would change state under dry-run.
func (ret *SResult) ToJSON() *jsonutils.JSONDict {
	obj := jsonutils.NewDict()
	obj.Add(jsonutils.NewString(ret.Name), "name")
	obj.Add(ret.Changes, "changes")
	switch ret.Result {
	case tristate.True:
		obj.Add(jsonutils.JSONTrue, "result")
	case tristate.False:
		obj.Add(jsonutils.JSONFalse, "result")
	default:
		obj.Add(jsonutils.JSONNull, "result")
	}
	obj.Add(jsonutils.NewString(ret.Comment()), "comment")
	return obj
}
