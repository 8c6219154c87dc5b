package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// DefaultNotes is the profile text a new account starts with.
const DefaultNotes = "Это ваша личная информация."

// CreateUser registers a new account with the given username and password
// hash. Returns ErrConflict if the username is already taken.
func (c *Client) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	var user User
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrConflict
		}
		user = User{
			Username:     username,
			PasswordHash: passwordHash,
			Notes:        DefaultNotes,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		if !errors.Is(err, ErrConflict) {
			log.Error("failed to create user", "username", username, "error", err)
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername returns the user with the given username.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Preload("ReadPoems").First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by username", "error", err)
		return nil, err
	}
	return &user, nil
}

// GetUserByID returns the user with the given id.
func (c *Client) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Preload("ReadPoems").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by id", "error", err)
		return nil, err
	}
	return &user, nil
}

// ToggleRead flips the read mark of a poem for a user and reports which
// way it flipped. Returns ErrNotFound if the poem does not exist.
func (c *Client) ToggleRead(ctx context.Context, userID uint, title string) (ReadAction, error) {
	var action ReadAction
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var poems int64
		if err := tx.Model(&Poem{}).Where("title = ?", title).Count(&poems).Error; err != nil {
			return err
		}
		if poems == 0 {
			return ErrNotFound
		}

		res := tx.Delete(&ReadPoem{}, "user_id = ? AND poem_title = ?", userID, title)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			action = ReadActionUnmarked
			return nil
		}
		action = ReadActionMarked
		return tx.Create(&ReadPoem{UserID: userID, PoemTitle: title}).Error
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error("failed to toggle read state", "title", title, "error", err)
		}
		return "", err
	}
	return action, nil
}

// TogglePin pins a poem for a user, or unpins it if it is already pinned.
// Pinning replaces any previously pinned poem; only one poem may be
// pinned at a time. Returns ErrNotFound if the poem does not exist.
func (c *Client) TogglePin(ctx context.Context, userID uint, title string) (PinAction, error) {
	var action PinAction
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var poems int64
		if err := tx.Model(&Poem{}).Where("title = ?", title).Count(&poems).Error; err != nil {
			return err
		}
		if poems == 0 {
			return ErrNotFound
		}

		var user User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		if user.PinnedTitle != nil && *user.PinnedTitle == title {
			action = PinActionUnpinned
			return tx.Model(&user).Update("pinned_title", nil).Error
		}
		action = PinActionPinned
		return tx.Model(&user).Update("pinned_title", title).Error
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error("failed to toggle pin", "title", title, "error", err)
		}
		return "", err
	}
	return action, nil
}

// UpdateNotes replaces the user's profile notes.
func (c *Client) UpdateNotes(ctx context.Context, userID uint, notes string) error {
	if err := c.db.WithContext(ctx).Model(&User{}).Where("id = ?", userID).
		Update("notes", notes).Error; err != nil {
		log.Error("failed to update notes", "error", err)
		return err
	}
	return nil
}

// UpdatePassword replaces the user's password hash.
func (c *Client) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	if err := c.db.WithContext(ctx).Model(&User{}).Where("id = ?", userID).
		Update("password_hash", passwordHash).Error; err != nil {
		log.Error("failed to update password", "error", err)
		return err
	}
	return nil
}

// UpdateShowAllTab sets the user's show-all-tab preference.
func (c *Client) UpdateShowAllTab(ctx context.Context, userID uint, show bool) error {
	if err := c.db.WithContext(ctx).Model(&User{}).Where("id = ?", userID).
		Update("show_all_tab", show).Error; err != nil {
		log.Error("failed to update show-all preference", "error", err)
		return err
	}
	return nil
}

// EnsureAdmin makes sure an admin account with the given username exists.
// A missing account is created with the given password hash; an existing
// non-admin account of the same name is upgraded. Safe to run on every
// startup.
func (c *Client) EnsureAdmin(ctx context.Context, username, passwordHash string) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user User
		err := tx.First(&user, "username = ?", username).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Info("creating admin account", "username", username)
			return tx.Create(&User{
				Username:     username,
				PasswordHash: passwordHash,
				Notes:        DefaultNotes,
				IsAdmin:      true,
			}).Error
		}
		if err != nil {
			return err
		}
		if user.IsAdmin {
			return nil
		}
		log.Info("granting admin rights to existing account", "username", username)
		return tx.Model(&user).Update("is_admin", true).Error
	})
}
