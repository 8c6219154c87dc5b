package database

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// seedPoems is the initial anthology, loaded once into an empty store.
var seedPoems = []Poem{
	{Title: "Плач Ярославны", Author: "пер. Н. Заболоцкого", Text: "Над широким берегом Дуная,\nНад великой Галицкой землей\nПлачет, из Путивля долетая,\nГолос Ярославны молодой:..."},
	{Title: "К Чаадаеву", Author: "А. С. Пушкин", Text: "Любви, надежды, тихой славы\nНедолго нежил нас обман,\nИсчезли юные забавы,\nКак сон, как утренний туман;..."},
	{Title: "Анчар", Author: "А. С. Пушкин", Text: "В пустыне чахлой и скупой,\nНа почве, зноем раскаленной,\nАнчар, как грозный часовой,\nСтоит — один во всей вселенной...."},
	{Title: "Пророк (Пушкин)", Author: "А. С. Пушкин", Text: "Духовной жаждою томим,\nВ пустыне мрачной я влачился, —\nИ шестикрылый серафим\nНа перепутье мне явился...."},
	{Title: "Письмо Онегина", Author: "А. С. Пушкин", Text: "Предвижу все: вас оскорбит\nПечальной тайны объясненье.\nКакое горькое презренье\nВаш гордый взгляд изобразит!..."},
	{Title: "Смерть Поэта", Author: "М. Ю. Лермонтов", Text: "Отмщенье, государь, отмщенье!\nПаду к ногам твоим:\nБудь справедлив и накажи убийцу,..."},
	{Title: "Родина", Author: "М. Ю. Лермонтов", Text: "Люблю отчизну я, но странною любовью!\nНе победит ее рассудок мой.\nНи слава, купленная кровью,..."},
	{Title: "Пророк (Лермонтов)", Author: "М. Ю. Лермонтов", Text: "С тех пор как Вечный Судия\nМне дал всеведенье пророка,\nВ очах людей читаю я\nСтраницы злобы и порока...."},
	{Title: "Отговорила роща золотая", Author: "С. А. Есенин", Text: "Отговорила роща золотая\nБерёзовым, весёлым языком,\nИ журавли, печально пролетая,\nУж не жалеют больше ни о ком...."},
	{Title: "Шаганэ ты моя, Шаганэ", Author: "С. А. Есенин", Text: "Шаганэ ты моя, Шаганэ!\nПотому, что я с севера, что ли,\nЯ готов рассказать тебе поле,\nПро волнистую рожь при луне...."},
	{Title: "Не жалею, не зову, не плачу", Author: "С. А. Есенин", Text: "Не жалею, не зову, не плачу,\nВсе пройдет, как с белых яблонь дым.\nУвяданья золотом охваченный,\nЯ не буду больше молодым...."},
	{Title: "Послушайте!", Author: "В. В. Маяковский", Text: "Послушайте!\nВедь, если звезды зажигают —\nзначит — это кому-нибудь нужно?..."},
	{Title: "Мне нравится, что вы больны не мной", Author: "М. И. Цветаева", Text: "Мне нравится, что Вы больны не мной,\nМне нравится, что я больна не Вами,\nЧто никогда тяжелый шар земной\nНе уплывет под нашими ногами...."},
	{Title: "Не с теми я, кто бросил землю", Author: "А. А. Ахматова", Text: "Не с теми я, кто бросил землю\nНа растерзание врагам.\nИх грубой лести я не внемлю,\nИм песен я своих не дам...."},
	{Title: "Я убит подо Ржевом", Author: "А. Т. Твардовский", Text: "Я убит подо Ржевом,\nВ безыменном болоте,\nВ пятой роте, на левом,\nПри жестоком налете...."},
	{Title: "Властителям и судиям", Author: "Гавриил Державин", Text: "Восстал всевышний бог, да судит\nЗемных богов во сонме их;\nДоколе, рек, доколь вам будет\nЩадить неправедных и злых?..."},
	{Title: "А судьи кто?", Author: "А. С. Грибоедов", Text: "А судьи кто? — За древностию лет\nК свободной жизни их вражда непримирима,\nСужденья черпают из забытых газет\nВремен Очаковских и покоренья Крыма;..."},
	{Title: "О, весна без конца и без краю…", Author: "А. А. Блок", Text: "О, весна без конца и без краю —\nБез конца и без краю мечта!\nУзнаю тебя, жизнь! Принимаю!\nИ приветствую звоном щита!..."},
}

// SeedPoems loads the initial anthology if the poem table is empty.
func (c *Client) SeedPoems(ctx context.Context) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Poem{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count poems: %w", err)
		}
		if count > 0 {
			return nil
		}

		for i := range seedPoems {
			poem := seedPoems[i]
			poem.Position = i + 1
			if err := tx.Create(&poem).Error; err != nil {
				return fmt.Errorf("failed to seed poem %q: %w", poem.Title, err)
			}
		}
		log.Info("seeded initial anthology", "poems", len(seedPoems))
		return nil
	})
}

// CountPoems returns the number of poems in the store.
func (c *Client) CountPoems(ctx context.Context) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&Poem{}).Count(&count).Error
	return count, err
}

// CountUsers returns the number of registered accounts.
func (c *Client) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&User{}).Count(&count).Error
	return count, err
}

// ResetUserState clears every user's read marks and pinned poems.
// Accounts and poems are left untouched.
func (c *Client) ResetUserState(ctx context.Context) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&ReadPoem{}).Error; err != nil {
			return fmt.Errorf("failed to clear read state: %w", err)
		}
		if err := tx.Model(&User{}).Where("pinned_title IS NOT NULL").
			Update("pinned_title", nil).Error; err != nil {
			return fmt.Errorf("failed to clear pins: %w", err)
		}
		return nil
	})
}
