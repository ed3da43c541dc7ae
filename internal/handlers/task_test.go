package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/uptask-dev/uptask-api/internal/models"
)

// TaskHandlerTestSuite covers task CRUD, the manager gate, and the status
// audit trail.
type TaskHandlerTestSuite struct {
	suite.Suite
	env     testEnv
	manager *models.User
	member  *models.User
	project *models.Project
}

func (s *TaskHandlerTestSuite) SetupTest() {
	s.env = setupTestEnv(s.T())
	s.manager = s.env.createUser(s.T(), "Manager", "manager@example.com", "supersecret")
	s.member = s.env.createUser(s.T(), "Member", "member@example.com", "supersecret")
	s.project = s.env.createProject(s.T(), s.manager, "Website")
	s.env.addTeamMember(s.T(), s.project, s.member)
}

func (s *TaskHandlerTestSuite) tasksPath() string {
	return fmt.Sprintf("/api/projects/%d/tasks", s.project.ID)
}

func (s *TaskHandlerTestSuite) taskPath(task *models.Task) string {
	return fmt.Sprintf("/api/projects/%d/tasks/%d", s.project.ID, task.ID)
}

func (s *TaskHandlerTestSuite) TestCreateTask_Manager() {
	w := s.env.doJSON(s.T(), http.MethodPost, s.tasksPath(), bearer(s.T(), s.manager), map[string]string{
		"name":        "Design",
		"description": "Design the landing page",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	var task models.Task
	s.Require().NoError(s.env.db.Where("name = ?", "Design").First(&task).Error)
	s.Equal(s.project.ID, task.ProjectID)
	s.Equal(models.TaskStatusPending, task.Status)
}

func (s *TaskHandlerTestSuite) TestCreateTask_MemberGets403() {
	w := s.env.doJSON(s.T(), http.MethodPost, s.tasksPath(), bearer(s.T(), s.member), map[string]string{
		"name":        "Sneaky",
		"description": "Should not exist",
	})
	s.Require().Equal(http.StatusForbidden, w.Code)
}

func (s *TaskHandlerTestSuite) TestListTasks_MemberCanRead() {
	s.env.createTask(s.T(), s.project, "Design")
	s.env.createTask(s.T(), s.project, "Build")

	w := s.env.doJSON(s.T(), http.MethodGet, s.tasksPath(), bearer(s.T(), s.member), nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var tasks []struct {
		Name string `json:"name"`
	}
	decodeJSON(s.T(), w, &tasks)
	s.Require().Len(tasks, 2)
}

func (s *TaskHandlerTestSuite) TestGetTask_FromAnotherProjectIs404() {
	other := s.env.createProject(s.T(), s.manager, "Other")
	foreign := s.env.createTask(s.T(), other, "Foreign")

	w := s.env.doJSON(s.T(), http.MethodGet,
		fmt.Sprintf("/api/projects/%d/tasks/%d", s.project.ID, foreign.ID),
		bearer(s.T(), s.manager), nil)
	s.Require().Equal(http.StatusNotFound, w.Code)
}

func (s *TaskHandlerTestSuite) TestUpdateTask_MemberGets403() {
	task := s.env.createTask(s.T(), s.project, "Design")

	w := s.env.doJSON(s.T(), http.MethodPut, s.taskPath(task), bearer(s.T(), s.member), map[string]string{
		"name":        "Hijacked",
		"description": "Nope",
	})
	s.Require().Equal(http.StatusForbidden, w.Code)
}

func (s *TaskHandlerTestSuite) TestUpdateStatus_AppendsAuditEntries() {
	task := s.env.createTask(s.T(), s.project, "Design")

	// A member may change status; history accumulates, it never rewrites.
	for _, status := range []models.TaskStatus{models.TaskStatusInProgress, models.TaskStatusCompleted} {
		w := s.env.doJSON(s.T(), http.MethodPost, s.taskPath(task)+"/status", bearer(s.T(), s.member), map[string]string{
			"status": string(status),
		})
		s.Require().Equal(http.StatusOK, w.Code)
	}

	var updated models.Task
	s.Require().NoError(s.env.db.First(&updated, task.ID).Error)
	s.Equal(models.TaskStatusCompleted, updated.Status)

	var changes []models.TaskStatusChange
	s.Require().NoError(s.env.db.Where("task_id = ?", task.ID).Order("id ASC").Find(&changes).Error)
	s.Require().Len(changes, 2)
	s.Equal(models.TaskStatusInProgress, changes[0].Status)
	s.Equal(models.TaskStatusCompleted, changes[1].Status)
	s.Equal(s.member.ID, changes[0].UserID)
}

func (s *TaskHandlerTestSuite) TestUpdateStatus_RejectsUnknownValue() {
	task := s.env.createTask(s.T(), s.project, "Design")

	w := s.env.doJSON(s.T(), http.MethodPost, s.taskPath(task)+"/status", bearer(s.T(), s.member), map[string]string{
		"status": "archived",
	})
	s.Require().Equal(http.StatusBadRequest, w.Code)
}

func (s *TaskHandlerTestSuite) TestGetTask_IncludesHistoryAndNotes() {
	task := s.env.createTask(s.T(), s.project, "Design")
	s.env.createNote(s.T(), task, s.member, "looks good")
	s.Require().NoError(s.env.db.Create(&models.TaskStatusChange{
		TaskID: task.ID,
		UserID: s.member.ID,
		Status: models.TaskStatusInProgress,
	}).Error)

	w := s.env.doJSON(s.T(), http.MethodGet, s.taskPath(task), bearer(s.T(), s.manager), nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		CompletedBy []struct {
			User struct {
				ID uint64 `json:"id"`
			} `json:"user"`
			Status models.TaskStatus `json:"status"`
		} `json:"completedBy"`
		Notes []struct {
			Content string `json:"content"`
		} `json:"notes"`
	}
	decodeJSON(s.T(), w, &resp)
	s.Require().Len(resp.CompletedBy, 1)
	s.Equal(s.member.ID, resp.CompletedBy[0].User.ID)
	s.Require().Len(resp.Notes, 1)
	s.Equal("looks good", resp.Notes[0].Content)
}

func (s *TaskHandlerTestSuite) TestDeleteTask_CascadesNotesAndHistory() {
	task := s.env.createTask(s.T(), s.project, "Design")
	s.env.createNote(s.T(), task, s.manager, "doomed note")
	s.Require().NoError(s.env.db.Create(&models.TaskStatusChange{
		TaskID: task.ID,
		UserID: s.manager.ID,
		Status: models.TaskStatusOnHold,
	}).Error)

	w := s.env.doJSON(s.T(), http.MethodDelete, s.taskPath(task), bearer(s.T(), s.manager), nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var tasks, notes, changes int64
	s.Require().NoError(s.env.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&tasks).Error)
	s.Require().NoError(s.env.db.Model(&models.Note{}).Where("task_id = ?", task.ID).Count(&notes).Error)
	s.Require().NoError(s.env.db.Model(&models.TaskStatusChange{}).Where("task_id = ?", task.ID).Count(&changes).Error)
	s.Zero(tasks)
	s.Zero(notes)
	s.Zero(changes)

	// Gone from the project's task listing as well.
	w = s.env.doJSON(s.T(), http.MethodGet, s.tasksPath(), bearer(s.T(), s.manager), nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var remaining []struct {
		ID uint64 `json:"id"`
	}
	decodeJSON(s.T(), w, &remaining)
	s.Empty(remaining)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
