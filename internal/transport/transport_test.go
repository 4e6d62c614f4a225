package transport_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"tasksync/internal/service"
	"tasksync/internal/testutil"
	"tasksync/internal/transport"
)

type recorder struct {
	messages []string
}

func (r *recorder) Notify(message string) {
	r.messages = append(r.messages, message)
}

func newTransport(svc *testutil.FakeService, opts ...transport.Option) (*transport.Transport, *recorder) {
	notes := &recorder{}
	return transport.New(svc, notes, opts...), notes
}

func TestFetchTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	for i, title := range []string{"a", "b", "c"} {
		svc.AddTask(string(rune('1'+i)), title, false)
	}
	tr, notes := newTransport(svc)

	tasks := tr.FetchTasks(context.Background(), 2)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].Title)
	assert.Empty(t, notes.messages)
	assert.Equal(t, 2, svc.Calls()[0].Limit)
}

func TestFetchTasks_DefaultLimit(t *testing.T) {
	svc := testutil.NewFakeService()
	tr, _ := newTransport(svc)

	for _, limit := range []int{0, -1} {
		tasks := tr.FetchTasks(context.Background(), limit)
		assert.NotNil(t, tasks)
	}
	for _, c := range svc.Calls() {
		assert.Equal(t, transport.DefaultLimit, c.Limit)
	}
}

func TestFetchTasks_FailureReturnsEmptyAndNotifiesOnce(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "a", false)
	svc.ListTasksErr = &googleapi.Error{Code: http.StatusInternalServerError}

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))
	tr, notes := newTransport(svc, transport.WithLogger(logger))

	tasks := tr.FetchTasks(context.Background(), 10)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
	assert.Equal(t, []string{transport.MsgFetchFailed}, notes.messages)

	assert.Contains(t, logBuf.String(), "level=ERROR")
	assert.Contains(t, logBuf.String(), "op=\"fetch tasks\"")
	assert.Contains(t, logBuf.String(), "status=500")
}

func TestAddTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.NextID = "201"
	tr, notes := newTransport(svc, transport.WithUserID(3))

	task, ok := tr.AddTask(context.Background(), "Buy milk")
	require.True(t, ok)
	assert.Equal(t, service.Task{ID: "201", Title: "Buy milk", Completed: false, UserID: 3}, task)
	assert.Empty(t, notes.messages)
}

func TestAddTask_Failure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = errors.New("network error: connection refused")
	tr, notes := newTransport(svc)

	task, ok := tr.AddTask(context.Background(), "Buy milk")
	assert.False(t, ok)
	assert.Zero(t, task)
	assert.Equal(t, []string{transport.MsgAddFailed}, notes.messages)
}

func TestUpdateTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("5", "old", false)
	tr, notes := newTransport(svc)

	task, ok := tr.UpdateTask(context.Background(), "5", service.TitlePatch("new"))
	require.True(t, ok)
	assert.Equal(t, "new", task.Title)
	assert.Empty(t, notes.messages)
}

func TestUpdateTask_Failure(t *testing.T) {
	svc := testutil.NewFakeService()
	tr, notes := newTransport(svc)

	_, ok := tr.UpdateTask(context.Background(), "404", service.TitlePatch("new"))
	assert.False(t, ok)
	assert.Equal(t, []string{transport.MsgUpdateFailed}, notes.messages)
}

func TestToggleTaskStatus_SendsOnlyCompleted(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("7", "walk", false)
	tr, _ := newTransport(svc)

	task, ok := tr.ToggleTaskStatus(context.Background(), "7", true)
	require.True(t, ok)
	assert.True(t, task.Completed)

	calls := svc.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, service.TaskID("7"), calls[0].ID)
	assert.Nil(t, calls[0].Patch.Title)
	require.NotNil(t, calls[0].Patch.Completed)
	assert.True(t, *calls[0].Patch.Completed)
}

func TestDeleteTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("3", "x", false)
	tr, notes := newTransport(svc)

	assert.True(t, tr.DeleteTask(context.Background(), "3"))
	assert.Empty(t, notes.messages)

	svc.DeleteTaskErr = &googleapi.Error{Code: http.StatusNotFound}
	assert.False(t, tr.DeleteTask(context.Background(), "3"))
	assert.Equal(t, []string{transport.MsgDeleteFailed}, notes.messages)
}
