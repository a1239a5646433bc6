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

// Package glance is the thin client against an OpenStack-style image
// catalog service. It authenticates through the identity service, resolves
// the catalog endpoint, and exposes the handful of image and task
// operations the state reconcilers consume.
package glance

import (
	"context"
	"sort"
	"strings"

	"yunion.io/x/jsonutils"
	"yunion.io/x/log"
	"yunion.io/x/pkg/errors"
	"yunion.io/x/pkg/utils"

	api "yunion.io/x/glancestate/pkg/apis/image"
	"yunion.io/x/glancestate/pkg/mcclient"
	"yunion.io/x/glancestate/pkg/mcclient/modules"
)

const (
	SchemaTask  = "task"
	SchemaImage = "image"
)

const ErrUnsupportedTaskType = errors.Error("unsupported task type")

type SGlanceClient struct {
	session    *mcclient.ClientSession
	apiVersion int

	images  modules.SImageManager
	tasks   modules.STaskManager
	schemas modules.SSchemaManager

	taskSchemaKeys []string
}

// NewGlanceClient authenticates against the identity service (or installs
// the admin token for API v1) and binds a session to the glance endpoint
// from the catalog, with any versioned path suffix normalized away.
func NewGlanceClient(ctx context.Context, opts *mcclient.SAuthOptions, apiVersion int, debug bool) (*SGlanceClient, error) {
	if apiVersion == 0 {
		apiVersion = 2
	}
	if err := opts.Validate(apiVersion); err != nil {
		return nil, err
	}
	client := mcclient.NewClient(opts.AuthUrl, 30, debug, opts.Insecure)
	var token mcclient.TokenCredential
	if len(opts.Password) > 0 {
		var err error
		token, err = client.AuthenticateV2(ctx, opts.User, opts.Password, opts.Tenant, opts.TenantId)
		if err != nil {
			return nil, err
		}
	} else {
		token = &mcclient.SSimpleToken{Token: opts.Token}
	}
	session := client.NewSession(ctx, token, opts.Region, mcclient.ENDPOINT_TYPE_INTERNAL)
	if len(opts.Endpoint) > 0 {
		session.SetServiceUrl(modules.ServiceTypeGlance, opts.Endpoint)
	}
	imageVersion := "v1"
	if apiVersion >= 2 {
		imageVersion = "v2"
	}
	return &SGlanceClient{
		session:    session,
		apiVersion: apiVersion,
		images:     modules.NewImageManager(imageVersion),
		tasks:      modules.NewTaskManager(),
		schemas:    modules.NewSchemaManager(),
	}, nil
}

// wrapCatalogError classifies an unauthorized response from the image
// service, so it is distinguishable from an identity-service rejection.
func wrapCatalogError(err error, op string) error {
	if mcclient.IsUnauthorized(err) {
		return errors.Wrap(err, "glance: Unauthorized")
	}
	return errors.Wrap(err, op)
}

func (cli *SGlanceClient) ImageList(name string) ([]api.SImage, error) {
	query := jsonutils.NewDict()
	if len(name) > 0 {
		query.Add(jsonutils.NewString(name), "name")
	}
	result, err := cli.images.List(cli.session, query)
	if err != nil {
		return nil, wrapCatalogError(err, "image list")
	}
	images := make([]api.SImage, 0, len(result.Data))
	for _, data := range result.Data {
		img := api.SImage{}
		err = data.Unmarshal(&img)
		if err != nil {
			return nil, errors.Wrap(err, "unmarshal image")
		}
		images = append(images, img)
	}
	return images, nil
}

func (cli *SGlanceClient) ImageShow(id string) (*api.SImage, error) {
	data, err := cli.images.Get(cli.session, id)
	if err != nil {
		if mcclient.IsNotFound(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "image %s", id)
		}
		return nil, wrapCatalogError(err, "image show")
	}
	img := api.SImage{}
	err = data.Unmarshal(&img)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal image")
	}
	return &img, nil
}

func (cli *SGlanceClient) ImageCreate(params *jsonutils.JSONDict) (*api.SImage, error) {
	data, err := cli.images.Create(cli.session, params)
	if err != nil {
		return nil, wrapCatalogError(err, "image create")
	}
	img := api.SImage{}
	err = data.Unmarshal(&img)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal image")
	}
	return &img, nil
}

func (cli *SGlanceClient) ImageUpdate(id string, params *jsonutils.JSONDict) (*api.SImage, error) {
	data, err := cli.images.Update(cli.session, id, params)
	if err != nil {
		return nil, wrapCatalogError(err, "image update")
	}
	img := api.SImage{}
	err = data.Unmarshal(&img)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal image")
	}
	return &img, nil
}

// SchemaGet returns the attribute name to description mapping of a backend
// schema.
func (cli *SGlanceClient) SchemaGet(name string) (map[string]string, error) {
	data, err := cli.schemas.Get(cli.session, name)
	if err != nil {
		return nil, wrapCatalogError(err, "schema get")
	}
	props, err := data.GetMap("properties")
	if err != nil {
		return nil, errors.Wrap(err, "schema has no properties")
	}
	ret := make(map[string]string, len(props))
	for key, value := range props {
		desc, _ := value.GetString("description")
		ret[key] = desc
	}
	return ret, nil
}

// taskSchema returns the allow-list of task attribute names, fetched once
// and cached for the lifetime of the client.
func (cli *SGlanceClient) taskSchema() ([]string, error) {
	if cli.taskSchemaKeys != nil {
		return cli.taskSchemaKeys, nil
	}
	schema, err := cli.SchemaGet(SchemaTask)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(schema))
	for key := range schema {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	cli.taskSchemaKeys = keys
	return keys, nil
}

func (cli *SGlanceClient) filterTask(data jsonutils.JSONObject) (*api.STask, error) {
	keys, err := cli.taskSchema()
	if err != nil {
		return nil, err
	}
	attrs, err := data.GetMap()
	if err != nil {
		return nil, errors.Wrap(err, "task record is not a dict")
	}
	filtered := jsonutils.NewDict()
	for _, key := range keys {
		if value, ok := attrs[key]; ok {
			filtered.Add(value, key)
		}
	}
	task := api.STask{}
	err = filtered.Unmarshal(&task)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal task")
	}
	return &task, nil
}

// TaskCreate submits a task, then reads it back through the schema-filtered
// projection. The task type is checked up front; the backend would accept
// an unknown type and park the task forever.
func (cli *SGlanceClient) TaskCreate(taskType string, input *jsonutils.JSONDict) (*api.STask, error) {
	if !utils.IsInStringArray(taskType, api.TaskTypes) {
		return nil, errors.Wrapf(ErrUnsupportedTaskType, `"type" needs to be one of the following: %s`,
			strings.Join(api.TaskTypes, ", "))
	}
	data, err := cli.tasks.Create(cli.session, taskType, input)
	if err != nil {
		return nil, wrapCatalogError(err, "task create")
	}
	id, err := data.GetString("id")
	if err != nil {
		return nil, errors.Wrap(err, "created task has no id")
	}
	log.Debugf("created task %s type %s", id, taskType)
	task, err := cli.TaskShow(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "created task %s not found on re-read", id)
	}
	return task, nil
}

// TaskShow fetches one task by id. An unknown id yields (nil, nil), not an
// error.
func (cli *SGlanceClient) TaskShow(id string) (*api.STask, error) {
	data, err := cli.tasks.Get(cli.session, id)
	if err != nil {
		if mcclient.IsNotFound(err) {
			return nil, nil
		}
		return nil, wrapCatalogError(err, "task show")
	}
	return cli.filterTask(data)
}

// TaskList returns all tasks, schema-filtered, keyed by task id.
func (cli *SGlanceClient) TaskList() (map[string]api.STask, error) {
	result, err := cli.tasks.List(cli.session)
	if err != nil {
		return nil, wrapCatalogError(err, "task list")
	}
	ret := make(map[string]api.STask, len(result.Data))
	for _, data := range result.Data {
		task, err := cli.filterTask(data)
		if err != nil {
			return nil, err
		}
		ret[task.Id] = *task
	}
	return ret, nil
}

// GetImageOwnerId resolves the owner of the image with the given name, or
// errors.ErrNotFound when no image matches.
func (cli *SGlanceClient) GetImageOwnerId(name string) (string, error) {
	images, err := cli.ImageList("")
	if err != nil {
		return "", err
	}
	imageId := ""
	for i := range images {
		if images[i].Name == name {
			imageId = images[i].Id
		}
	}
	if len(imageId) == 0 {
		return "", errors.Wrapf(errors.ErrNotFound, "image %q", name)
	}
	img, err := cli.ImageShow(imageId)
	if err != nil {
		return "", err
	}
	return img.Owner, nil
}
