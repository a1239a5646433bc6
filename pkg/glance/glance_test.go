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

package glance

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"yunion.io/x/jsonutils"
	"yunion.io/x/pkg/errors"

	api "yunion.io/x/glancestate/pkg/apis/image"
	"yunion.io/x/glancestate/pkg/mcclient"
)

const testToken = "tok123"

// startServer runs a catalog service with a keystone v2.0 tokens endpoint
// whose catalog points back at the server itself, with a versioned suffix
// so endpoint normalization is exercised on every request.
func startServer(t *testing.T) (*httptest.Server, *http.ServeMux) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	mux.HandleFunc("/v2.0/tokens", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		expires := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access": {
			"token": {"id": %q, "expires": %q, "tenant": {"id": "t1", "name": "admin"}},
			"serviceCatalog": [{"name": "glance", "type": "image", "endpoints": [
				{"region": "RegionOne", "publicURL": %q, "internalURL": %q, "adminURL": %q}
			]}],
			"user": {"id": "u1", "name": "admin", "username": "admin"}
		}}`, testToken, expires, srv.URL+"/v2", srv.URL+"/v2", srv.URL+"/v2")
	})
	return srv, mux
}

func passwordOpts(srv *httptest.Server) *mcclient.SAuthOptions {
	return &mcclient.SAuthOptions{
		User:     "admin",
		Password: "secret",
		Tenant:   "admin",
		AuthUrl:  srv.URL + "/v2.0",
	}
}

func requireToken(t *testing.T, r *http.Request) {
	require.Equal(t, testToken, r.Header.Get("X-Auth-Token"))
}

func readBody(t *testing.T, r *http.Request) jsonutils.JSONObject {
	data, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	body, err := jsonutils.Parse(data)
	require.NoError(t, err)
	return body
}

func serveSchemas(mux *http.ServeMux, calls *int) {
	mux.HandleFunc("/v2/schemas/task", func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"name": "task", "properties": {
			"id": {"description": "An identifier for the task"},
			"type": {"description": "The type of task represented by this content"},
			"status": {"description": "The current status of this task"},
			"owner": {"description": "An identifier for the owner of this task"},
			"message": {"description": "Human-readable informative message"},
			"input": {"description": "The parameters required by task"},
			"result": {"description": "The result of current task"},
			"expires_at": {"description": "Datetime when this resource would be subject to removal"}
		}}`)
	})
}

func TestImageOperations(t *testing.T) {
	srv, mux := startServer(t)
	mux.HandleFunc("/v2/images", func(w http.ResponseWriter, r *http.Request) {
		requireToken(t, r)
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case "GET":
			require.Equal(t, "img1", r.URL.Query().Get("name"))
			fmt.Fprint(w, `{"images": [
				{"id": "i-1", "name": "img1", "status": "active", "visibility": "public",
				 "protected": false, "checksum": "abc", "owner": "t1",
				 "disk_format": "qcow2", "container_format": "bare"}
			]}`)
		case "POST":
			body := readBody(t, r)
			name, _ := body.GetString("name")
			require.Equal(t, "img2", name)
			fmt.Fprint(w, `{"image": {"id": "i-2", "name": "img2", "status": "queued"}}`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/v2/images/i-1", func(w http.ResponseWriter, r *http.Request) {
		requireToken(t, r)
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case "GET":
			fmt.Fprint(w, `{"id": "i-1", "name": "img1", "status": "active", "owner": "t1", "checksum": "abc"}`)
		case "PUT":
			fmt.Fprint(w, `{"id": "i-1", "name": "img1", "status": "active", "visibility": "private"}`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/v2/images/i-404", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "no such image"}`)
	})

	cli, err := NewGlanceClient(context.Background(), passwordOpts(srv), 2, false)
	require.NoError(t, err)

	images, err := cli.ImageList("img1")
	require.NoError(t, err)
	require.Len(t, images, 1)
	require.Equal(t, "i-1", images[0].Id)
	require.Equal(t, api.IMAGE_STATUS_ACTIVE, images[0].Status)
	require.Equal(t, "qcow2", images[0].DiskFormat)

	// image records are served both bare and under an "image" key
	img, err := cli.ImageShow("i-1")
	require.NoError(t, err)
	require.Equal(t, "abc", img.Checksum)

	_, err = cli.ImageShow("i-404")
	require.Error(t, err)
	require.Equal(t, errors.ErrNotFound, errors.Cause(err))

	params := jsonutils.NewDict()
	params.Add(jsonutils.NewString("img2"), "name")
	created, err := cli.ImageCreate(params)
	require.NoError(t, err)
	require.Equal(t, "i-2", created.Id)
	require.Equal(t, api.IMAGE_STATUS_QUEUED, created.Status)

	updated, err := cli.ImageUpdate("i-1", params)
	require.NoError(t, err)
	require.Equal(t, api.IMAGE_VISIBILITY_PRIVATE, updated.Visibility)
}

func TestImageListBareArrayAdminToken(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc("/v1/images", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "admintok", r.Header.Get("X-Auth-Token"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"id": "i-1", "name": "img1", "status": "active"}]`)
	})

	opts := &mcclient.SAuthOptions{
		Token:    "admintok",
		AuthUrl:  srv.URL + "/v2.0",
		Endpoint: srv.URL + "/v1",
	}
	cli, err := NewGlanceClient(context.Background(), opts, 1, false)
	require.NoError(t, err)

	images, err := cli.ImageList("")
	require.NoError(t, err)
	require.Len(t, images, 1)
	require.Equal(t, "img1", images[0].Name)
}

func TestTaskOperations(t *testing.T) {
	srv, mux := startServer(t)
	schemaCalls := 0
	serveSchemas(mux, &schemaCalls)
	mux.HandleFunc("/v2/tasks", func(w http.ResponseWriter, r *http.Request) {
		requireToken(t, r)
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case "POST":
			body := readBody(t, r)
			taskType, _ := body.GetString("type")
			require.Equal(t, api.TASK_TYPE_IMPORT, taskType)
			importFrom, _ := body.GetString("input", "import_from")
			require.Equal(t, "http://example.com/a.raw", importFrom)
			fmt.Fprint(w, `{"id": "t-1", "type": "import", "status": "pending",
				"self": "/v2/tasks/t-1", "schema": "/v2/schemas/task"}`)
		case "GET":
			fmt.Fprint(w, `{"tasks": [
				{"id": "t-1", "type": "import", "status": "success",
				 "self": "/v2/tasks/t-1", "schema": "/v2/schemas/task"},
				{"id": "t-2", "type": "import", "status": "failure", "message": "boom",
				 "self": "/v2/tasks/t-2", "schema": "/v2/schemas/task"}
			]}`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/v2/tasks/t-1", func(w http.ResponseWriter, r *http.Request) {
		requireToken(t, r)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "t-1", "type": "import", "status": "processing", "owner": "t1",
			"input": {"import_from": "http://example.com/a.raw"},
			"self": "/v2/tasks/t-1", "schema": "/v2/schemas/task"}`)
	})
	mux.HandleFunc("/v2/tasks/t-404", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "no such task"}`)
	})

	cli, err := NewGlanceClient(context.Background(), passwordOpts(srv), 2, false)
	require.NoError(t, err)

	input := jsonutils.NewDict()
	input.Add(jsonutils.NewString("http://example.com/a.raw"), "import_from")
	task, err := cli.TaskCreate(api.TASK_TYPE_IMPORT, input)
	require.NoError(t, err)
	// TaskCreate re-reads the record through the schema projection
	require.Equal(t, "t-1", task.Id)
	require.Equal(t, api.TASK_STATUS_PROCESSING, task.Status)
	require.Equal(t, "t1", task.Owner)
	require.NotNil(t, task.Input)
	require.False(t, task.IsTerminal())

	missing, err := cli.TaskShow("t-404")
	require.NoError(t, err)
	require.Nil(t, missing)

	tasks, err := cli.TaskList()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	done := tasks["t-1"]
	require.True(t, done.IsTerminal())
	require.Equal(t, "boom", tasks["t-2"].Message)

	// the task schema is fetched once and cached
	require.Equal(t, 1, schemaCalls)
}

func TestTaskCreateUnsupportedType(t *testing.T) {
	srv, mux := startServer(t)
	taskCalls := 0
	mux.HandleFunc("/v2/tasks", func(w http.ResponseWriter, r *http.Request) {
		taskCalls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	cli, err := NewGlanceClient(context.Background(), passwordOpts(srv), 2, false)
	require.NoError(t, err)

	_, err = cli.TaskCreate("export", jsonutils.NewDict())
	require.Error(t, err)
	require.Equal(t, ErrUnsupportedTaskType, errors.Cause(err))
	// rejected before any request is issued
	require.Equal(t, 0, taskCalls)
}

func TestSchemaGet(t *testing.T) {
	srv, mux := startServer(t)
	schemaCalls := 0
	serveSchemas(mux, &schemaCalls)

	cli, err := NewGlanceClient(context.Background(), passwordOpts(srv), 2, false)
	require.NoError(t, err)

	schema, err := cli.SchemaGet(SchemaTask)
	require.NoError(t, err)
	require.Equal(t, "The current status of this task", schema["status"])
	require.Contains(t, schema, "expires_at")
}

func TestUnauthorizedKeystone(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc("/v2.0/tokens", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "invalid credentials"}`)
	})

	opts := &mcclient.SAuthOptions{
		User:     "admin",
		Password: "wrong",
		Tenant:   "admin",
		AuthUrl:  srv.URL + "/v2.0",
	}
	_, err := NewGlanceClient(context.Background(), opts, 2, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "keystone: Unauthorized")
	require.True(t, mcclient.IsUnauthorized(err))
}

func TestUnauthorizedGlance(t *testing.T) {
	srv, mux := startServer(t)
	mux.HandleFunc("/v2/images", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "token expired"}`)
	})

	cli, err := NewGlanceClient(context.Background(), passwordOpts(srv), 2, false)
	require.NoError(t, err)

	_, err = cli.ImageList("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "glance: Unauthorized")
	require.True(t, mcclient.IsUnauthorized(err))
}

func TestGetImageOwnerId(t *testing.T) {
	srv, mux := startServer(t)
	mux.HandleFunc("/v2/images", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"images": [
			{"id": "i-1", "name": "img1", "owner": "t1"},
			{"id": "i-2", "name": "img1", "owner": "t2"},
			{"id": "i-3", "name": "other", "owner": "t3"}
		]}`)
	})
	mux.HandleFunc("/v2/images/i-2", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "i-2", "name": "img1", "owner": "t2"}`)
	})

	cli, err := NewGlanceClient(context.Background(), passwordOpts(srv), 2, false)
	require.NoError(t, err)

	// the last name match wins
	owner, err := cli.GetImageOwnerId("img1")
	require.NoError(t, err)
	require.Equal(t, "t2", owner)

	_, err = cli.GetImageOwnerId("missing")
	require.Error(t, err)
	require.Equal(t, errors.ErrNotFound, errors.Cause(err))
}
