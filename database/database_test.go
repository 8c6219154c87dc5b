package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DatabaseTestSuite struct {
	suite.Suite
	client *Client
	ctx    context.Context
}

func (s *DatabaseTestSuite) SetupTest() {
	client, err := New("", filepath.Join(s.T().TempDir(), "test.db"))
	require.NoError(s.T(), err)
	s.client = client
	s.ctx = context.Background()
}

func (s *DatabaseTestSuite) addPoem(title string) {
	_, err := s.client.CreatePoem(s.ctx, title, "А. С. Пушкин", "строка один\nстрока два")
	require.NoError(s.T(), err)
}

func (s *DatabaseTestSuite) addUser(username string) *User {
	user, err := s.client.CreateUser(s.ctx, username, "hash")
	require.NoError(s.T(), err)
	return user
}

func (s *DatabaseTestSuite) TestCreateUserConflict() {
	_, err := s.client.CreateUser(s.ctx, "masha", "hash1")
	require.NoError(s.T(), err)

	_, err = s.client.CreateUser(s.ctx, "masha", "hash2")
	assert.ErrorIs(s.T(), err, ErrConflict)
}

func (s *DatabaseTestSuite) TestNewUserDefaults() {
	user := s.addUser("masha")
	assert.Equal(s.T(), DefaultNotes, user.Notes)
	assert.False(s.T(), user.IsAdmin)
	assert.Nil(s.T(), user.PinnedTitle)
}

func (s *DatabaseTestSuite) TestToggleReadPair() {
	s.addPoem("Анчар")
	user := s.addUser("masha")

	action, err := s.client.ToggleRead(s.ctx, user.ID, "Анчар")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), ReadActionMarked, action)

	got, err := s.client.GetUserByID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), got.HasRead("Анчар"))

	action, err = s.client.ToggleRead(s.ctx, user.ID, "Анчар")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), ReadActionUnmarked, action)

	got, err = s.client.GetUserByID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), got.ReadPoems)
}

func (s *DatabaseTestSuite) TestToggleReadUnknownPoem() {
	user := s.addUser("masha")
	_, err := s.client.ToggleRead(s.ctx, user.ID, "Нет такого")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseTestSuite) TestTogglePinPair() {
	s.addPoem("Анчар")
	user := s.addUser("masha")

	action, err := s.client.TogglePin(s.ctx, user.ID, "Анчар")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), PinActionPinned, action)

	action, err = s.client.TogglePin(s.ctx, user.ID, "Анчар")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), PinActionUnpinned, action)

	got, err := s.client.GetUserByID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), got.PinnedTitle)
}

func (s *DatabaseTestSuite) TestPinReplacesPreviousPin() {
	s.addPoem("Анчар")
	s.addPoem("Родина")
	user := s.addUser("masha")

	_, err := s.client.TogglePin(s.ctx, user.ID, "Анчар")
	require.NoError(s.T(), err)

	action, err := s.client.TogglePin(s.ctx, user.ID, "Родина")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), PinActionPinned, action)

	got, err := s.client.GetUserByID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), got.PinnedTitle)
	assert.Equal(s.T(), "Родина", *got.PinnedTitle)
}

func (s *DatabaseTestSuite) TestTogglePinUnknownPoem() {
	user := s.addUser("masha")
	_, err := s.client.TogglePin(s.ctx, user.ID, "Нет такого")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseTestSuite) TestCreatePoemConflict() {
	s.addPoem("Анчар")
	_, err := s.client.CreatePoem(s.ctx, "Анчар", "кто-то", "текст")
	assert.ErrorIs(s.T(), err, ErrConflict)
}

func (s *DatabaseTestSuite) TestListPoemsInsertionOrder() {
	s.addPoem("Анчар")
	s.addPoem("Родина")
	s.addPoem("Послушайте!")

	poems, err := s.client.ListPoems(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), poems, 3)
	assert.Equal(s.T(), "Анчар", poems[0].Title)
	assert.Equal(s.T(), "Родина", poems[1].Title)
	assert.Equal(s.T(), "Послушайте!", poems[2].Title)
}

func (s *DatabaseTestSuite) TestUpdatePoemInPlace() {
	s.addPoem("Анчар")

	poem, err := s.client.UpdatePoem(s.ctx, "Анчар", "Анчар", "Пушкин", "новый текст")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Пушкин", poem.Author)
	assert.Equal(s.T(), "новый текст", poem.Text)
}

func (s *DatabaseTestSuite) TestUpdatePoemNotFound() {
	_, err := s.client.UpdatePoem(s.ctx, "Нет такого", "Новое", "а", "т")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseTestSuite) TestRenameConflict() {
	s.addPoem("Анчар")
	s.addPoem("Родина")

	_, err := s.client.UpdatePoem(s.ctx, "Анчар", "Родина", "а", "т")
	assert.ErrorIs(s.T(), err, ErrConflict)
}

func (s *DatabaseTestSuite) TestRenameCascadesIntoReadStateAndPin() {
	s.addPoem("Анчар")
	user := s.addUser("masha")

	_, err := s.client.ToggleRead(s.ctx, user.ID, "Анчар")
	require.NoError(s.T(), err)
	_, err = s.client.TogglePin(s.ctx, user.ID, "Анчар")
	require.NoError(s.T(), err)

	_, err = s.client.UpdatePoem(s.ctx, "Анчар", "Анчар2", "А. С. Пушкин", "текст")
	require.NoError(s.T(), err)

	got, err := s.client.GetUserByID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), got.HasRead("Анчар2"))
	assert.False(s.T(), got.HasRead("Анчар"))
	require.NotNil(s.T(), got.PinnedTitle)
	assert.Equal(s.T(), "Анчар2", *got.PinnedTitle)

	_, err = s.client.GetPoem(s.ctx, "Анчар")
	assert.ErrorIs(s.T(), err, ErrNotFound)
	renamed, err := s.client.GetPoem(s.ctx, "Анчар2")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Анчар2", renamed.Title)
}

func (s *DatabaseTestSuite) TestRenameKeepsPosition() {
	s.addPoem("Анчар")
	s.addPoem("Родина")

	_, err := s.client.UpdatePoem(s.ctx, "Анчар", "Анчар2", "а", "т")
	require.NoError(s.T(), err)

	poems, err := s.client.ListPoems(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), poems, 2)
	assert.Equal(s.T(), "Анчар2", poems[0].Title)
}

func (s *DatabaseTestSuite) TestDeleteCascadesIntoReadStateAndPin() {
	s.addPoem("Анчар")
	user := s.addUser("masha")

	_, err := s.client.ToggleRead(s.ctx, user.ID, "Анчар")
	require.NoError(s.T(), err)
	_, err = s.client.TogglePin(s.ctx, user.ID, "Анчар")
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.client.DeletePoem(s.ctx, "Анчар"))

	got, err := s.client.GetUserByID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), got.ReadPoems)
	assert.Nil(s.T(), got.PinnedTitle)
}

func (s *DatabaseTestSuite) TestDeletePoemNotFound() {
	err := s.client.DeletePoem(s.ctx, "Нет такого")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseTestSuite) TestDeleteLeavesOtherUsersIntact() {
	s.addPoem("Анчар")
	s.addPoem("Родина")
	masha := s.addUser("masha")
	petya := s.addUser("petya")

	_, err := s.client.ToggleRead(s.ctx, masha.ID, "Анчар")
	require.NoError(s.T(), err)
	_, err = s.client.ToggleRead(s.ctx, petya.ID, "Родина")
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.client.DeletePoem(s.ctx, "Анчар"))

	got, err := s.client.GetUserByID(s.ctx, petya.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), got.HasRead("Родина"))
}

func (s *DatabaseTestSuite) TestEnsureAdminIdempotent() {
	require.NoError(s.T(), s.client.EnsureAdmin(s.ctx, "admin", "hash"))
	require.NoError(s.T(), s.client.EnsureAdmin(s.ctx, "admin", "other-hash"))

	users, err := s.client.CountUsers(s.ctx)
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), 1, users)

	admin, err := s.client.GetUserByUsername(s.ctx, "admin")
	require.NoError(s.T(), err)
	assert.True(s.T(), admin.IsAdmin)
	// The existing password is not overwritten on repeat runs.
	assert.Equal(s.T(), "hash", admin.PasswordHash)
}

func (s *DatabaseTestSuite) TestEnsureAdminUpgradesExistingAccount() {
	s.addUser("admin")
	require.NoError(s.T(), s.client.EnsureAdmin(s.ctx, "admin", "hash"))

	admin, err := s.client.GetUserByUsername(s.ctx, "admin")
	require.NoError(s.T(), err)
	assert.True(s.T(), admin.IsAdmin)
}

func (s *DatabaseTestSuite) TestSeedPoems() {
	require.NoError(s.T(), s.client.SeedPoems(s.ctx))

	count, err := s.client.CountPoems(s.ctx)
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), len(seedPoems), count)

	// Seeding again leaves the anthology untouched.
	require.NoError(s.T(), s.client.SeedPoems(s.ctx))
	count, err = s.client.CountPoems(s.ctx)
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), len(seedPoems), count)

	poems, err := s.client.ListPoems(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Плач Ярославны", poems[0].Title)
}

func (s *DatabaseTestSuite) TestResetUserState() {
	s.addPoem("Анчар")
	user := s.addUser("masha")
	_, err := s.client.ToggleRead(s.ctx, user.ID, "Анчар")
	require.NoError(s.T(), err)
	_, err = s.client.TogglePin(s.ctx, user.ID, "Анчар")
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.client.ResetUserState(s.ctx))

	got, err := s.client.GetUserByID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), got.ReadPoems)
	assert.Nil(s.T(), got.PinnedTitle)
}

func (s *DatabaseTestSuite) TestUpdateNotesAndPreference() {
	user := s.addUser("masha")

	require.NoError(s.T(), s.client.UpdateNotes(s.ctx, user.ID, "мои заметки"))
	require.NoError(s.T(), s.client.UpdateShowAllTab(s.ctx, user.ID, true))

	got, err := s.client.GetUserByID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "мои заметки", got.Notes)
	assert.True(s.T(), got.ShowAllTab)
}

func TestDatabaseTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}
