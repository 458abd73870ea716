// Package keyboard builds the reply and inline keyboards of the ordering flow.
package keyboard

import (
	"log/slog"
	"net/url"

	telebot "gopkg.in/telebot.v3"
)

// Button labels. Navigation labels double as router keywords, so a catalog
// entry named exactly like one of them is unreachable by design.
const (
	BtnOrderCard       = "Оформить карту"
	BtnHideMenu        = "Скрыть меню"
	BtnBackToCountries = "Назад к странам"
	BtnBackToBanks     = "Назад к банкам"
	BtnMainMenu        = "В главное меню"
	BtnSendContact     = "Отправить контакт"
	BtnOpenApp         = "Открыть приложение"
	BtnOrderInApp      = "Оформить в приложении"
)

// ListPerRow fixes the page width of selection keyboards.
const ListPerRow = 2

// Builder creates keyboards for the ordering flow.
type Builder struct {
	log *slog.Logger
}

// NewBuilder returns a new Builder instance.
func NewBuilder(log *slog.Logger) *Builder {
	return &Builder{log: log}
}

// MainMenu builds the idle reply keyboard.
func (b *Builder) MainMenu() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}

	markup.Reply(
		markup.Row(markup.Text(BtnOrderCard)),
		markup.Row(markup.Text(BtnHideMenu)),
	)

	return markup
}

// List builds a reply keyboard from items, chunked into rows of ListPerRow.
func (b *Builder) List(items []string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}

	var rows []telebot.Row
	for i := 0; i < len(items); i += ListPerRow {
		end := i + ListPerRow
		if end > len(items) {
			end = len(items)
		}

		row := make(telebot.Row, 0, ListPerRow)
		for _, item := range items[i:end] {
			row = append(row, markup.Text(item))
		}
		rows = append(rows, row)
	}

	markup.Reply(rows...)
	return markup
}

// BankList builds the bank selection keyboard with navigation options.
func (b *Builder) BankList(banks []string) *telebot.ReplyMarkup {
	items := make([]string, 0, len(banks)+2)
	items = append(items, banks...)
	items = append(items, BtnBackToCountries, BtnMainMenu)
	return b.List(items)
}

// Contact builds the keyboard requesting a contact share, with navigation.
func (b *Builder) Contact() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}

	markup.Reply(
		markup.Row(markup.Contact(BtnSendContact)),
		markup.Row(markup.Text(BtnBackToBanks), markup.Text(BtnMainMenu)),
	)

	return markup
}

// Remove hides the reply keyboard.
func (b *Builder) Remove() *telebot.ReplyMarkup {
	return &telebot.ReplyMarkup{RemoveKeyboard: true}
}

// WebAppOpen builds an inline keyboard opening the mini app.
func (b *Builder) WebAppOpen(baseURL string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(markup.WebApp(BtnOpenApp, &telebot.WebApp{URL: baseURL})))
	return markup
}

// WebAppOrder builds an inline keyboard opening the mini app with the chosen
// country and bank carried as query parameters.
func (b *Builder) WebAppOrder(baseURL, country, bank string) *telebot.ReplyMarkup {
	query := url.Values{}
	query.Set("country", country)
	query.Set("bank", bank)

	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(markup.WebApp(BtnOrderInApp, &telebot.WebApp{
		URL: baseURL + "?" + query.Encode(),
	})))
	return markup
}
