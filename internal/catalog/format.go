package catalog

import "strings"

// detailAttributes fixes the display order of offering attributes. Attributes
// with an empty value are omitted from the rendered text.
var detailAttributes = []struct {
	key   string
	label string
}{
	{"Сроки изготовления", "Сроки"},
	{"Цена", "Цена"},
	{"Документы", "Документы"},
	{"Платёжная система", "ПС"},
	{"Платёжная валюта", "Валюта"},
	{"Стоимость обслуживания", "Обслуживание"},
	{"SWIFT", "SWIFT"},
	{"Срок действия", "Срок действия"},
	{"Пополнение из России", "Пополнение из РФ"},
}

// Details renders the offering as a multi-line text for the chat.
func (o Offering) Details() string {
	lines := []string{
		"Страна: " + o.Country,
		"Банк: " + o.Bank,
	}

	for _, attr := range detailAttributes {
		if value := o.Attributes[attr.key]; value != "" {
			lines = append(lines, attr.label+": "+value)
		}
	}

	return strings.Join(lines, "\n")
}
