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
	"yunion.io/x/jsonutils"
	"yunion.io/x/log"
	"yunion.io/x/pkg/errors"
	"yunion.io/x/pkg/tristate"

	api "yunion.io/x/glancestate/pkg/apis/image"
	"yunion.io/x/glancestate/pkg/util/waitutils"
)

// ImageImport converges by delegating creation to an asynchronous import
// task: when no image with the declared name exists, submit an import
// task, poll it to a terminal status, then verify the task actually
// produced the image. A completed task is correlated to its image purely
// by name equality; two concurrent imports sharing a name will race.
//
// Only validation failures surface as a Go error; every other condition is
// captured in the returned SResult.
func (rec *SReconciler) ImageImport(spec *SImageSpec) (*SResult, error) {
	if err := spec.ValidateImport(); err != nil {
		return nil, err
	}
	ret := newResult(spec.Name)

	img, msg, err := rec.findImage(spec.Name)
	if err != nil {
		ret.markFailed(rec.test)
		ret.appendCommentf("%s", err.Error())
		return ret, nil
	}
	log.Debugf("%s", msg)
	if img != nil {
		ret.appendCommentf("Image %q already exists", spec.Name)
		return ret, nil
	}
	if rec.test {
		ret.Result = tristate.None
		ret.appendCommentf("image_import would create an image from %s", spec.Location)
		return ret, nil
	}

	task, err := rec.backend.TaskCreate(api.TASK_TYPE_IMPORT, spec.taskInput())
	if err != nil {
		ret.markFailed(rec.test)
		ret.appendCommentf("%s", err.Error())
		return ret, nil
	}
	log.Debugf("created new task %s", task.Id)
	ret.recordCreated("task_id", task.Id)

	first := true
	werr := waitutils.Wait(rec.clock, rec.interval, rec.timeout, func() (bool, error) {
		if !first {
			tasks, err := rec.backend.TaskList()
			if err != nil {
				return false, err
			}
			ntask, ok := tasks[task.Id]
			if !ok {
				return false, errors.Wrapf(ErrTaskVanished, "Created task %s vanished", task.Id)
			}
			task = &ntask
		}
		first = false
		switch task.Status {
		case api.TASK_STATUS_SUCCESS:
			log.Debugf("task %s has successfully completed", task.Id)
			return true, nil
		case api.TASK_STATUS_FAILURE:
			return false, errors.Wrapf(ErrTaskFailed, "Task %s has failed", task.Id)
		default:
			return false, nil
		}
	})
	if werr == waitutils.ErrTimeout {
		ret.Result = tristate.False
		ret.appendCommentf("Task %s did not reach state success before the timeout: last status was %q",
			task.Id, task.Status)
		return ret, nil
	} else if werr != nil {
		ret.Result = tristate.False
		ret.appendCommentf("%s", werr.Error())
		return ret, nil
	}

	// The import task completed; check that it created the image.
	img, msg, err = rec.findImage(spec.Name)
	if err != nil {
		ret.Result = tristate.False
		ret.appendCommentf("%s", err.Error())
		return ret, nil
	}
	if img == nil {
		ret.Result = tristate.False
		ret.appendCommentf("%s", msg)
		return ret, nil
	}
	ret.setNewAttr("image_id", jsonutils.NewString(img.Id))
	ret.setNewAttr("image_status", jsonutils.NewString(img.Status))
	ret.appendCommentf("Image %s was successfully created by task %s", img.Id, task.Id)
	if len(spec.Checksum) > 0 {
		rec.checkChecksum(spec, img, ret)
	}
	log.Debugf("image_import returns %s", ret.ToJSON())
	return ret, nil
}
