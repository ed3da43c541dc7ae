package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptask-dev/uptask-api/internal/models"
)

func TestCreateAndListNotes(t *testing.T) {
	env := setupTestEnv(t)
	manager := env.createUser(t, "Manager", "manager@example.com", "supersecret")
	member := env.createUser(t, "Member", "member@example.com", "supersecret")
	project := env.createProject(t, manager, "Website")
	env.addTeamMember(t, project, member)
	task := env.createTask(t, project, "Design")

	notesPath := fmt.Sprintf("/api/projects/%d/tasks/%d/notes", project.ID, task.ID)

	w := env.doJSON(t, http.MethodPost, notesPath, bearer(t, member), map[string]string{
		"content": "needs a second pass",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.doJSON(t, http.MethodGet, notesPath, bearer(t, manager), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var notes []struct {
		Content   string `json:"content"`
		CreatedBy struct {
			ID uint64 `json:"id"`
		} `json:"createdBy"`
	}
	decodeJSON(t, w, &notes)
	require.Len(t, notes, 1)
	require.Equal(t, "needs a second pass", notes[0].Content)
	require.Equal(t, member.ID, notes[0].CreatedBy.ID)
}

func TestDeleteNote_OnlyAuthor(t *testing.T) {
	env := setupTestEnv(t)
	manager := env.createUser(t, "Manager", "manager@example.com", "supersecret")
	member := env.createUser(t, "Member", "member@example.com", "supersecret")
	project := env.createProject(t, manager, "Website")
	env.addTeamMember(t, project, member)
	task := env.createTask(t, project, "Design")
	note := env.createNote(t, task, member, "mine")

	notePath := fmt.Sprintf("/api/projects/%d/tasks/%d/notes/%d", project.ID, task.ID, note.ID)

	// The manager did not write it, so even the manager is refused.
	w := env.doJSON(t, http.MethodDelete, notePath, bearer(t, manager), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.doJSON(t, http.MethodDelete, notePath, bearer(t, member), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Note{}).Where("id = ?", note.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestDeleteNote_Unknown(t *testing.T) {
	env := setupTestEnv(t)
	manager := env.createUser(t, "Manager", "manager@example.com", "supersecret")
	project := env.createProject(t, manager, "Website")
	task := env.createTask(t, project, "Design")

	w := env.doJSON(t, http.MethodDelete,
		fmt.Sprintf("/api/projects/%d/tasks/%d/notes/9999", project.ID, task.ID),
		bearer(t, manager), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
