package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"triviaquiz/internal/common"
	"triviaquiz/internal/common/security"
	"triviaquiz/internal/domain/model"
	"triviaquiz/internal/platform/seeddata"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserServiceForTest(t *testing.T, repo *fakeUserRepo, dataset []seeddata.BasicUser) (*UserService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dataset)
	}))
	t.Cleanup(server.Close)

	return NewUserService(repo, seeddata.NewClient(server.URL, server.Client()), db), mock
}

func TestGetUserOwnerOnly(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(model.User{ID: "u1", Username: "testuser", Role: model.RoleBasic})
	repo.add(model.User{ID: "u2", Username: "otheruser", Role: model.RoleBasic})
	svc, _ := newUserServiceForTest(t, repo, nil)

	resp, err := svc.GetUser(context.Background(), "u1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "testuser", resp.Data.Username)

	_, err = svc.GetUser(context.Background(), "u1", "u2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrForbidden))
	assert.Equal(t, "Not authorized to access other user's information", err.Error())
}

func TestGetUserMissingReportedAsSuccess(t *testing.T) {
	svc, _ := newUserServiceForTest(t, newFakeUserRepo(), nil)

	resp, err := svc.GetUser(context.Background(), "u1", "ghost")
	require.NoError(t, err)
	assert.Equal(t, "No User with the id: ghost found", resp.Msg)
	assert.Nil(t, resp.Data)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(model.User{ID: "u1", Username: "testuser", HashedPassword: "oldhash", Role: model.RoleBasic})
	svc, _ := newUserServiceForTest(t, repo, nil)

	resp, err := svc.UpdateUser(context.Background(), "u1", "u1", UpdateUserRequest{
		FirstName: "Updated",
		Password:  "N3wP@ssword",
	})
	require.NoError(t, err)
	assert.Equal(t, "User with the id: u1 successfully updated", resp.Msg)
	assert.Equal(t, "Updated", resp.Data.FirstName)
	assert.Empty(t, resp.Data.HashedPassword)

	stored := repo.users["u1"]
	assert.NotEqual(t, "oldhash", stored.HashedPassword)
	assert.NotEqual(t, "N3wP@ssword", stored.HashedPassword, "plaintext must never be stored")
	assert.True(t, security.CheckPasswordHash("N3wP@ssword", stored.HashedPassword))
}

func TestUpdateUserOtherAccountForbidden(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(model.User{ID: "u2", Username: "otheruser", Role: model.RoleBasic})
	svc, _ := newUserServiceForTest(t, repo, nil)

	_, err := svc.UpdateUser(context.Background(), "u1", "u2", UpdateUserRequest{FirstName: "Hacked"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrForbidden))
}

// Admin callers are refused deletion; basic callers may delete.
func TestDeleteUserAdminCallerForbidden(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(model.User{ID: "u1", Username: "testuser", Role: model.RoleBasic})
	svc, _ := newUserServiceForTest(t, repo, nil)

	_, err := svc.DeleteUser(context.Background(), model.RoleAdmin, "u1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrForbidden))
	assert.Equal(t, "Not authorized to update admin user's information", err.Error())
	assert.Len(t, repo.users, 1, "nothing may be deleted")

	resp, err := svc.DeleteUser(context.Background(), model.RoleBasic, "u1")
	require.NoError(t, err)
	assert.Equal(t, "User with the id: u1 successfully deleted", resp.Msg)
	assert.Empty(t, repo.users)
}

func TestSeedBasicUsersReplacesBasicRows(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(model.User{ID: "old", Username: "stalebasic", Role: model.RoleBasic})
	repo.add(model.User{ID: "admin", Username: "adminuser", Role: model.RoleAdmin})

	dataset := []seeddata.BasicUser{
		{FirstName: "Seed", LastName: "One", Username: "seedone", Email: "seed.one@example.com", Password: "P@ssw0rd123"},
		{FirstName: "Seed", LastName: "Two", Username: "seedtwo", Email: "seed.two@example.com", Password: "P@ssw0rd123", Role: model.RoleBasic},
	}
	svc, mock := newUserServiceForTest(t, repo, dataset)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.SeedBasicUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)

	// Stale basic rows gone, admin untouched, dataset present with hashes
	assert.Len(t, repo.users, 3)
	assert.NotNil(t, repo.users["admin"])
	for _, u := range repo.users {
		if u.Role != model.RoleBasic {
			continue
		}
		assert.NotEqual(t, "stalebasic", u.Username)
		assert.True(t, security.CheckPasswordHash("P@ssw0rd123", u.HashedPassword))
	}
	require.NoError(t, mock.ExpectationsWereMet())
}
