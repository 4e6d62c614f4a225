package service_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasksync/internal/service"
)

func TestTaskID_DecodesNumberAndString(t *testing.T) {
	var tasks []service.Task
	data := `[{"id":7,"title":"a","completed":true,"userId":1},{"id":"abc","title":"b","completed":false,"userId":2}]`
	require.NoError(t, json.Unmarshal([]byte(data), &tasks))

	require.Len(t, tasks, 2)
	assert.Equal(t, service.TaskID("7"), tasks[0].ID)
	assert.True(t, tasks[0].Completed)
	assert.Equal(t, service.TaskID("abc"), tasks[1].ID)
	assert.Equal(t, 2, tasks[1].UserID)
}

func TestTaskID_EncodesDigitsAsNumber(t *testing.T) {
	tests := []struct {
		id   service.TaskID
		want string
	}{
		{"201", `201`},
		{"0", `0`},
		{"007", `"007"`},
		{"abc", `"abc"`},
		{"", `""`},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(data), "id %q", tt.id)
	}
}

func TestTaskID_Null(t *testing.T) {
	var task service.Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":null,"title":"x"}`), &task))
	assert.True(t, task.ID.IsZero())
}

func TestTaskID_Invalid(t *testing.T) {
	var task service.Task
	assert.Error(t, json.Unmarshal([]byte(`{"id":true}`), &task))
}

func TestPatch_OnlySetFieldsEncoded(t *testing.T) {
	data, err := json.Marshal(service.CompletedPatch(false))
	require.NoError(t, err)
	assert.JSONEq(t, `{"completed":false}`, string(data))

	data, err = json.Marshal(service.TitlePatch("Buy bread"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Buy bread"}`, string(data))
}

func TestPatch_Apply(t *testing.T) {
	task := service.Task{ID: "3", Title: "old", Completed: false, UserID: 1}

	got := service.TitlePatch("new").Apply(task)
	assert.Equal(t, "new", got.Title)
	assert.False(t, got.Completed)

	got = service.CompletedPatch(true).Apply(task)
	assert.Equal(t, "old", got.Title)
	assert.True(t, got.Completed)
}

func TestNewTask_Encoding(t *testing.T) {
	data, err := json.Marshal(service.NewTask{Title: "Buy milk", UserID: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Buy milk","completed":false,"userId":1}`, string(data))
}
