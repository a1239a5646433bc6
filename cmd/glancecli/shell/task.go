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

package shell

import (
	"fmt"

	"yunion.io/x/jsonutils"
	"yunion.io/x/pkg/util/shellutils"

	api "yunion.io/x/glancestate/pkg/apis/image"
)

func init() {
	type TaskListOptions struct {
	}
	shellutils.R(&TaskListOptions{}, "task-list", "List tasks", func(env *SEnv, args *TaskListOptions) error {
		tasks, err := env.Client.TaskList()
		if err != nil {
			return err
		}
		list := make([]api.STask, 0, len(tasks))
		for _, task := range tasks {
			list = append(list, task)
		}
		printList(list, nil)
		return nil
	})

	type TaskShowOptions struct {
		ID string `help:"ID of the task"`
	}
	shellutils.R(&TaskShowOptions{}, "task-show", "Show details of a task", func(env *SEnv, args *TaskShowOptions) error {
		task, err := env.Client.TaskShow(args.ID)
		if err != nil {
			return err
		}
		if task == nil {
			return fmt.Errorf("no task with id %q", args.ID)
		}
		printObject(task)
		return nil
	})

	type TaskCreateOptions struct {
		TYPE  string `help:"Type of the task" choices:"import"`
		INPUT string `help:"Task input parameters, as a JSON string"`
	}
	shellutils.R(&TaskCreateOptions{}, "task-create", "Submit an asynchronous task", func(env *SEnv, args *TaskCreateOptions) error {
		input, err := jsonutils.ParseString(args.INPUT)
		if err != nil {
			return err
		}
		inputDict, ok := input.(*jsonutils.JSONDict)
		if !ok {
			return fmt.Errorf("task input must be a JSON object")
		}
		task, err := env.Client.TaskCreate(args.TYPE, inputDict)
		if err != nil {
			return err
		}
		printObject(task)
		return nil
	})

	type SchemaShowOptions struct {
		NAME string `help:"Name of the schema" choices:"image|task"`
	}
	shellutils.R(&SchemaShowOptions{}, "schema-show", "Show attribute descriptions of a backend schema", func(env *SEnv, args *SchemaShowOptions) error {
		schema, err := env.Client.SchemaGet(args.NAME)
		if err != nil {
			return err
		}
		printObject(schema)
		return nil
	})
}
