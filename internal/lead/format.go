package lead

import "strings"

const (
	headerContact = "Новая заявка на оформление карты"
	headerWebApp  = "Новая заявка (WebApp sendData)"
	headerHTTP    = "Новая заявка (WebApp)"
)

// Format renders the lead as the notification text sent to operators. Field
// order is fixed per source; absent optional fields are omitted.
func (l Lead) Format() string {
	if l.Source == SourceHTTP {
		return l.formatSparse()
	}

	return l.formatFull()
}

// formatFull renders chat-originated leads. The user line and selections are
// always present, with placeholders for anything the user never provided.
func (l Lead) formatFull() string {
	header := headerContact
	if l.Source == SourceWebApp {
		header = headerWebApp
	}

	username := "(без username)"
	if l.Username != "" {
		username = "@" + l.Username
	}

	phone := l.Phone
	if phone == "" {
		phone = "не указан"
	}

	country := l.Country
	if country == "" {
		country = "не выбрана"
	}

	bank := l.Bank
	if bank == "" {
		bank = "не выбран"
	}

	lines := []string{
		header,
		strings.TrimSpace("Пользователь: " + strings.TrimSpace(l.Name+" "+username)),
		"Телефон: " + phone,
		"Страна: " + country,
		"Банк: " + bank,
	}
	if l.Comment != "" {
		lines = append(lines, "Комментарий: "+l.Comment)
	}

	return strings.Join(lines, "\n")
}

// formatSparse renders HTTP-submitted leads: only fields that were actually
// provided appear, so an empty submission yields the header line alone.
func (l Lead) formatSparse() string {
	lines := []string{headerHTTP}

	if l.Country != "" {
		lines = append(lines, "Страна: "+l.Country)
	}
	if l.Bank != "" {
		lines = append(lines, "Банк: "+l.Bank)
	}
	if l.Name != "" {
		lines = append(lines, "Имя: "+l.Name)
	}
	if l.Username != "" {
		lines = append(lines, "Username: @"+l.Username)
	}
	if l.Phone != "" {
		lines = append(lines, "Телефон: "+l.Phone)
	}
	if l.Comment != "" {
		lines = append(lines, "Комментарий: "+l.Comment)
	}

	return strings.Join(lines, "\n")
}
