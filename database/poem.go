package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// ListPoems returns all poems in insertion order.
func (c *Client) ListPoems(ctx context.Context) ([]Poem, error) {
	var poems []Poem
	if err := c.db.WithContext(ctx).Order("position").Find(&poems).Error; err != nil {
		log.Error("failed to list poems", "error", err)
		return nil, err
	}
	return poems, nil
}

// GetPoem returns the poem with the given title.
func (c *Client) GetPoem(ctx context.Context, title string) (*Poem, error) {
	var poem Poem
	if err := c.db.WithContext(ctx).First(&poem, "title = ?", title).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get poem", "title", title, "error", err)
		return nil, err
	}
	return &poem, nil
}

// CreatePoem adds a new poem at the end of the anthology.
// Returns ErrConflict if the title is already taken.
func (c *Client) CreatePoem(ctx context.Context, title, author, text string) (*Poem, error) {
	var poem Poem
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Poem{}).Where("title = ?", title).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrConflict
		}

		var maxPos int
		if err := tx.Model(&Poem{}).Select("COALESCE(MAX(position), 0)").Scan(&maxPos).Error; err != nil {
			return err
		}

		poem = Poem{Title: title, Author: author, Text: text, Position: maxPos + 1}
		return tx.Create(&poem).Error
	})
	if err != nil {
		if !errors.Is(err, ErrConflict) {
			log.Error("failed to create poem", "title", title, "error", err)
		}
		return nil, err
	}
	return &poem, nil
}

// UpdatePoem updates a poem's fields. A changed title re-keys the record
// and cascades the rename into every user's read state and pinned title.
// The poem mutation and the cascade commit together or not at all.
func (c *Client) UpdatePoem(ctx context.Context, title, newTitle, newAuthor, newText string) (*Poem, error) {
	var poem Poem
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&poem, "title = ?", title).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if newTitle == title {
			poem.Author = newAuthor
			poem.Text = newText
			return tx.Save(&poem).Error
		}

		var count int64
		if err := tx.Model(&Poem{}).Where("title = ?", newTitle).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrConflict
		}

		renamed := Poem{
			Title:     newTitle,
			Author:    newAuthor,
			Text:      newText,
			Position:  poem.Position,
			CreatedAt: poem.CreatedAt,
		}
		if err := tx.Create(&renamed).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Poem{}, "title = ?", title).Error; err != nil {
			return err
		}
		if err := cascadeRename(tx, title, newTitle); err != nil {
			return err
		}
		poem = renamed
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrConflict) {
			log.Error("failed to update poem", "title", title, "error", err)
		}
		return nil, err
	}
	return &poem, nil
}

// DeletePoem removes a poem and cascades the deletion into every user's
// read state and pinned title within the same transaction.
func (c *Client) DeletePoem(ctx context.Context, title string) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&Poem{}, "title = ?", title)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return cascadeDelete(tx, title)
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		log.Error("failed to delete poem", "title", title, "error", err)
	}
	return err
}

// cascadeRename repoints all dependent user state from an old title to a
// new one. The new title was just checked to be free, so no read row can
// collide with an existing one.
func cascadeRename(tx *gorm.DB, oldTitle, newTitle string) error {
	if err := tx.Model(&ReadPoem{}).
		Where("poem_title = ?", oldTitle).
		Update("poem_title", newTitle).Error; err != nil {
		return fmt.Errorf("failed to cascade rename into read state: %w", err)
	}
	if err := tx.Model(&User{}).
		Where("pinned_title = ?", oldTitle).
		Update("pinned_title", newTitle).Error; err != nil {
		return fmt.Errorf("failed to cascade rename into pins: %w", err)
	}
	return nil
}

// cascadeDelete removes all dependent user state for a deleted title.
func cascadeDelete(tx *gorm.DB, title string) error {
	if err := tx.Delete(&ReadPoem{}, "poem_title = ?", title).Error; err != nil {
		return fmt.Errorf("failed to cascade delete into read state: %w", err)
	}
	if err := tx.Model(&User{}).
		Where("pinned_title = ?", title).
		Update("pinned_title", nil).Error; err != nil {
		return fmt.Errorf("failed to cascade delete into pins: %w", err)
	}
	return nil
}
