package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/FbcGa/sparkTasks-backend/internal/constants"
	"github.com/FbcGa/sparkTasks-backend/internal/models"
	"github.com/FbcGa/sparkTasks-backend/internal/repository"
	"github.com/FbcGa/sparkTasks-backend/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.List{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	taskRepo := repository.NewTaskRepository(suite.db)
	listRepo := repository.NewListRepository(suite.db)
	suite.handler = NewTaskHandler(services.NewTaskService(taskRepo, listRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *TaskHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestList(title string, userID uint64, position int) *models.List {
	list := &models.List{
		Title:    title,
		UserID:   userID,
		Position: position,
	}
	suite.db.Create(list)
	return list
}

func (suite *TaskHandlerTestSuite) createTestTask(text string, listID, userID uint64, position int) *models.Task {
	task := &models.Task{
		Text:     text,
		ListID:   listID,
		UserID:   userID,
		Position: position,
	}
	suite.db.Create(task)
	return task
}

// Helper function to create authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *TaskHandlerTestSuite) reload(taskID uint64) models.Task {
	var task models.Task
	suite.db.First(&task, taskID)
	return task
}

// TestCreateTask_SequentialPositions tests that tasks are appended at
// max+1, starting from zero
func (suite *TaskHandlerTestSuite) TestCreateTask_SequentialPositions() {
	user := suite.createTestUser("test@example.com")
	list := suite.createTestList("board", user.ID, 0)

	for i, text := range []string{"first", "second"} {
		body, _ := json.Marshal(map[string]interface{}{
			"text":    text,
			"list_id": list.ID,
		})
		c, w := suite.createAuthContext("POST", "/task", body, user.ID)
		suite.handler.CreateTask(c)

		assert.Equal(suite.T(), http.StatusCreated, w.Code)

		var response map[string]interface{}
		assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
		task := response["task"].(map[string]interface{})
		assert.Equal(suite.T(), float64(i), task["position"])
		assert.Equal(suite.T(), float64(list.ID), task["list_id"])
	}
}

// TestCreateTask_ListNotOwned tests appending to a foreign list
func (suite *TaskHandlerTestSuite) TestCreateTask_ListNotOwned() {
	user1 := suite.createTestUser("user1@example.com")
	user2 := suite.createTestUser("user2@example.com")
	list := suite.createTestList("theirs", user2.ID, 0)

	body, _ := json.Marshal(map[string]interface{}{
		"text":    "sneaky",
		"list_id": list.ID,
	})
	c, w := suite.createAuthContext("POST", "/task", body, user1.ID)
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateTask_MissingFields tests creation without text
func (suite *TaskHandlerTestSuite) TestCreateTask_MissingFields() {
	user := suite.createTestUser("test@example.com")

	body, _ := json.Marshal(map[string]interface{}{"list_id": 1})
	c, w := suite.createAuthContext("POST", "/task", body, user.ID)
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestDeleteTask_Success tests deleting a task and that siblings keep
// their positions
func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	user := suite.createTestUser("test@example.com")
	list := suite.createTestList("board", user.ID, 0)
	doomed := suite.createTestTask("doomed", list.ID, user.ID, 0)
	sibling := suite.createTestTask("survivor", list.ID, user.ID, 1)

	body, _ := json.Marshal(map[string]interface{}{
		"id":     doomed.ID,
		"listId": list.ID,
	})
	c, w := suite.createAuthContext("DELETE", "/task/delete", body, user.ID)
	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", doomed.ID).Count(&count)
	assert.Zero(suite.T(), count)

	// Siblings are not renumbered on delete
	assert.Equal(suite.T(), 1, suite.reload(sibling.ID).Position)
}

// TestDeleteTask_NotOwned tests deleting another user's task
func (suite *TaskHandlerTestSuite) TestDeleteTask_NotOwned() {
	user1 := suite.createTestUser("user1@example.com")
	user2 := suite.createTestUser("user2@example.com")
	list := suite.createTestList("theirs", user2.ID, 0)
	task := suite.createTestTask("theirs", list.ID, user2.ID, 0)

	body, _ := json.Marshal(map[string]interface{}{
		"id":     task.ID,
		"listId": list.ID,
	})
	c, w := suite.createAuthContext("DELETE", "/task/delete", body, user1.ID)
	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestChangeTaskText_Success tests renaming a task
func (suite *TaskHandlerTestSuite) TestChangeTaskText_Success() {
	user := suite.createTestUser("test@example.com")
	list := suite.createTestList("board", user.ID, 0)
	task := suite.createTestTask("old text", list.ID, user.ID, 0)

	body, _ := json.Marshal(map[string]interface{}{
		"taskId":   task.ID,
		"listId":   list.ID,
		"newTitle": "new text",
	})
	c, w := suite.createAuthContext("PUT", "/task/change", body, user.ID)
	suite.handler.ChangeTaskText(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	updated := response["list"].(map[string]interface{})
	assert.Equal(suite.T(), "new text", updated["text"])

	assert.Equal(suite.T(), "new text", suite.reload(task.ID).Text)
}

// TestChangeTaskText_WrongList tests that the (id, list, owner) scope
// applies to renames
func (suite *TaskHandlerTestSuite) TestChangeTaskText_WrongList() {
	user := suite.createTestUser("test@example.com")
	list := suite.createTestList("board", user.ID, 0)
	other := suite.createTestList("other", user.ID, 1)
	task := suite.createTestTask("text", list.ID, user.ID, 0)

	body, _ := json.Marshal(map[string]interface{}{
		"taskId":   task.ID,
		"listId":   other.ID,
		"newTitle": "new text",
	})
	c, w := suite.createAuthContext("PUT", "/task/change", body, user.ID)
	suite.handler.ChangeTaskText(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestReorderTasks_AssignsIndexPositions tests the [C,A,B] -> 0,1,2
// property
func (suite *TaskHandlerTestSuite) TestReorderTasks_AssignsIndexPositions() {
	user := suite.createTestUser("test@example.com")
	list := suite.createTestList("board", user.ID, 0)
	a := suite.createTestTask("a", list.ID, user.ID, 0)
	b := suite.createTestTask("b", list.ID, user.ID, 1)
	cTask := suite.createTestTask("c", list.ID, user.ID, 2)

	body, _ := json.Marshal(map[string]interface{}{
		"list_id":          list.ID,
		"ordered_task_ids": []uint64{cTask.ID, a.ID, b.ID},
	})
	c, w := suite.createAuthContext("PUT", "/tasks/reorder", body, user.ID)
	suite.handler.ReorderTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	assert.Equal(suite.T(), 0, suite.reload(cTask.ID).Position)
	assert.Equal(suite.T(), 1, suite.reload(a.ID).Position)
	assert.Equal(suite.T(), 2, suite.reload(b.ID).Position)
}

// TestReorderTasks_SkipsForeignIDs tests that ids outside the list are
// ignored while their index still counts
func (suite *TaskHandlerTestSuite) TestReorderTasks_SkipsForeignIDs() {
	user := suite.createTestUser("test@example.com")
	list := suite.createTestList("board", user.ID, 0)
	other := suite.createTestList("other", user.ID, 1)
	a := suite.createTestTask("a", list.ID, user.ID, 0)
	b := suite.createTestTask("b", list.ID, user.ID, 1)
	stranger := suite.createTestTask("stranger", other.ID, user.ID, 0)

	body, _ := json.Marshal(map[string]interface{}{
		"list_id":          list.ID,
		"ordered_task_ids": []uint64{b.ID, stranger.ID, a.ID},
	})
	c, w := suite.createAuthContext("PUT", "/tasks/reorder", body, user.ID)
	suite.handler.ReorderTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	assert.Equal(suite.T(), 0, suite.reload(b.ID).Position)
	assert.Equal(suite.T(), 2, suite.reload(a.ID).Position)
	// The stranger keeps its place in its own list
	assert.Equal(suite.T(), 0, suite.reload(stranger.ID).Position)
	assert.Equal(suite.T(), other.ID, suite.reload(stranger.ID).ListID)
}

// TestReorderTasks_ListNotOwned tests reordering inside a foreign list
func (suite *TaskHandlerTestSuite) TestReorderTasks_ListNotOwned() {
	user1 := suite.createTestUser("user1@example.com")
	user2 := suite.createTestUser("user2@example.com")
	list := suite.createTestList("theirs", user2.ID, 0)

	body, _ := json.Marshal(map[string]interface{}{
		"list_id":          list.ID,
		"ordered_task_ids": []uint64{},
	})
	c, w := suite.createAuthContext("PUT", "/tasks/reorder", body, user1.ID)
	suite.handler.ReorderTasks(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestMoveTask_Success tests relocating a task with new positions on
// both sides
func (suite *TaskHandlerTestSuite) TestMoveTask_Success() {
	user := suite.createTestUser("test@example.com")
	from := suite.createTestList("from", user.ID, 0)
	to := suite.createTestList("to", user.ID, 1)
	t1 := suite.createTestTask("stays", from.ID, user.ID, 0)
	t2 := suite.createTestTask("moves", from.ID, user.ID, 1)
	t3 := suite.createTestTask("resident", to.ID, user.ID, 0)

	body, _ := json.Marshal(map[string]interface{}{
		"fromListId": from.ID,
		"toListId":   to.ID,
		"updatedFromTasks": []map[string]interface{}{
			{"id": t1.ID, "position": 0},
		},
		"updatedToTasks": []map[string]interface{}{
			{"id": t3.ID, "position": 0},
			{"id": t2.ID, "position": 1},
		},
	})
	c, w := suite.createAuthContext("PUT", "/task/move", body, user.ID)
	suite.handler.MoveTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	moved := suite.reload(t2.ID)
	assert.Equal(suite.T(), to.ID, moved.ListID)
	assert.Equal(suite.T(), 1, moved.Position)

	var response struct {
		UpdatedLists []struct {
			Title string `json:"title"`
			Tasks []struct {
				Text string `json:"text"`
			} `json:"tasks"`
		} `json:"updatedLists"`
	}
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(suite.T(), response.UpdatedLists, 2)
	assert.Equal(suite.T(), "to", response.UpdatedLists[1].Title)
	assert.Len(suite.T(), response.UpdatedLists[1].Tasks, 2)
	assert.Equal(suite.T(), "resident", response.UpdatedLists[1].Tasks[0].Text)
	assert.Equal(suite.T(), "moves", response.UpdatedLists[1].Tasks[1].Text)
}

// TestMoveTask_ForeignTaskRejected tests that a task id owned by
// another user fails the whole batch and nothing is applied
func (suite *TaskHandlerTestSuite) TestMoveTask_ForeignTaskRejected() {
	user1 := suite.createTestUser("user1@example.com")
	user2 := suite.createTestUser("user2@example.com")
	from := suite.createTestList("from", user1.ID, 0)
	to := suite.createTestList("to", user1.ID, 1)
	mine := suite.createTestTask("mine", from.ID, user1.ID, 0)
	theirList := suite.createTestList("their board", user2.ID, 0)
	theirs := suite.createTestTask("theirs", theirList.ID, user2.ID, 0)

	body, _ := json.Marshal(map[string]interface{}{
		"fromListId": from.ID,
		"toListId":   to.ID,
		"updatedFromTasks": []map[string]interface{}{
			{"id": mine.ID, "position": 5},
		},
		"updatedToTasks": []map[string]interface{}{
			{"id": theirs.ID, "position": 0},
		},
	})
	c, w := suite.createAuthContext("PUT", "/task/move", body, user1.ID)
	suite.handler.MoveTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	// Nothing moved: the hijack target is untouched and the valid
	// placement in the same batch rolled back with it
	hijacked := suite.reload(theirs.ID)
	assert.Equal(suite.T(), theirList.ID, hijacked.ListID)
	assert.Equal(suite.T(), 0, hijacked.Position)
	assert.Equal(suite.T(), 0, suite.reload(mine.ID).Position)
}

// TestMoveTask_ListNotOwned tests moving between lists the caller does
// not own
func (suite *TaskHandlerTestSuite) TestMoveTask_ListNotOwned() {
	user1 := suite.createTestUser("user1@example.com")
	user2 := suite.createTestUser("user2@example.com")
	from := suite.createTestList("mine", user1.ID, 0)
	foreign := suite.createTestList("theirs", user2.ID, 0)

	body, _ := json.Marshal(map[string]interface{}{
		"fromListId":       from.ID,
		"toListId":         foreign.ID,
		"updatedFromTasks": []map[string]interface{}{},
		"updatedToTasks":   []map[string]interface{}{},
	})
	c, w := suite.createAuthContext("PUT", "/task/move", body, user1.ID)
	suite.handler.MoveTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
