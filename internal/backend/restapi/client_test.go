package restapi_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"tasksync/internal/backend/restapi"
	"tasksync/internal/config"
	"tasksync/internal/service"
)

type recorded struct {
	method    string
	path      string
	query     string
	body      string
	requestID string
	ctype     string
}

// newServer starts a server that records the last request and replies with status and body.
func newServer(t *testing.T, status int, body string) (*restapi.Client, *recorded) {
	t.Helper()

	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		*rec = recorded{
			method:    r.Method,
			path:      r.URL.Path,
			query:     r.URL.RawQuery,
			body:      string(data),
			requestID: r.Header.Get(restapi.RequestIDHeader),
			ctype:     r.Header.Get("Content-Type"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	c, err := restapi.NewWithHTTPClient(srv.URL+"/todos", srv.Client())
	require.NoError(t, err)
	return c, rec
}

func TestListTasks(t *testing.T) {
	c, rec := newServer(t, http.StatusOK,
		`[{"id":1,"title":"delectus aut autem","completed":false,"userId":1},{"id":2,"title":"quis ut nam","completed":true,"userId":1}]`)

	tasks, err := c.ListTasks(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/todos", rec.path)
	assert.Equal(t, "_limit=10", rec.query)
	assert.NotEmpty(t, rec.requestID)
	assert.Empty(t, rec.body)

	require.Len(t, tasks, 2)
	assert.Equal(t, service.TaskID("1"), tasks[0].ID)
	assert.Equal(t, "quis ut nam", tasks[1].Title)
	assert.True(t, tasks[1].Completed)
}

func TestListTasks_NullBodyIsEmpty(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `null`)

	tasks, err := c.ListTasks(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestCreateTask(t *testing.T) {
	c, rec := newServer(t, http.StatusCreated, `{"id":201,"title":"Buy milk","completed":false,"userId":1}`)

	task, err := c.CreateTask(context.Background(), service.NewTask{Title: "Buy milk", UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/todos", rec.path)
	assert.Equal(t, "application/json", rec.ctype)
	assert.JSONEq(t, `{"title":"Buy milk","completed":false,"userId":1}`, rec.body)
	assert.Equal(t, service.TaskID("201"), task.ID)
	assert.Equal(t, "Buy milk", task.Title)
}

func TestUpdateTask(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"id":7,"title":"x","completed":true,"userId":1}`)

	task, err := c.UpdateTask(context.Background(), "7", service.CompletedPatch(true))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/todos/7", rec.path)
	assert.JSONEq(t, `{"completed":true}`, rec.body)
	assert.True(t, task.Completed)
}

func TestDeleteTask(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{}`)

	require.NoError(t, c.DeleteTask(context.Background(), "3"))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/todos/3", rec.path)
}

func TestNon2xxIsAPIError(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusBadRequest} {
		c, _ := newServer(t, status, `{}`)

		err := c.DeleteTask(context.Background(), "3")
		require.Error(t, err)

		var apiErr *googleapi.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, status, apiErr.Code)
		assert.Equal(t, status, restapi.StatusCode(err))
	}
}

func TestDecodeError(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `not json`)

	_, err := c.ListTasks(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
	assert.Zero(t, restapi.StatusCode(err))
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := restapi.NewWithHTTPClient(url+"/todos", nil)
	require.NoError(t, err)

	_, err = c.ListTasks(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network error")
	assert.Zero(t, restapi.StatusCode(err))
}

func TestRequestTimeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-done:
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(done) })

	cfg := &config.Config{Settings: config.DefaultSettings()}
	cfg.BaseURL = srv.URL + "/todos"
	cfg.RequestTimeout = config.Duration{Duration: 50 * time.Millisecond}

	c, err := restapi.New(cfg, nil)
	require.NoError(t, err)

	_, err = c.ListTasks(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request timed out")
}

func TestCanceledContext(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `[]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListTasks(ctx, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request canceled")
}

func TestRequestIDsAreUnique(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `[]`)

	_, err := c.ListTasks(context.Background(), 1)
	require.NoError(t, err)
	first := rec.requestID

	_, err = c.ListTasks(context.Background(), 1)
	require.NoError(t, err)
	assert.NotEqual(t, first, rec.requestID)
}

func TestNewWithHTTPClient_InvalidURL(t *testing.T) {
	for _, u := range []string{"ftp://example.com/todos", "://bad", "todos"} {
		_, err := restapi.NewWithHTTPClient(u, nil)
		assert.Error(t, err, u)
	}
}

func TestBaseURL_TrimsSlash(t *testing.T) {
	c, err := restapi.NewWithHTTPClient("https://jsonplaceholder.typicode.com/todos/", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://jsonplaceholder.typicode.com/todos", c.BaseURL())
}
