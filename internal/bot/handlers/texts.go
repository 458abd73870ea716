package handlers

// User-facing messages of the ordering flow.
const (
	MsgGreeting           = "Привет! Нажмите «Оформить карту», чтобы начать."
	MsgMenuOpened         = "Меню открыто. Выберите действие:"
	MsgMenuHidden         = "Меню скрыто. Чтобы открыть, используйте /menu."
	MsgMainMenu           = "Главное меню:"
	MsgCatalogUnavailable = "Данные о продуктах недоступны. Попробуйте позже."
	MsgChooseCountry      = "Выберите страну оформления карты:"
	MsgUnknownCountry     = "Такой страны нет в списке. Выберите из меню."
	MsgOpenWebApp         = "Можно оформить через мини-приложение или выбрать страну вручную:"
	MsgChooseAction       = "Выберите действие:"
	MsgLeaveContact       = "Либо оставьте контакт — мы свяжемся для оформления:"
	MsgLeadSent           = "Заявка отправлена, спасибо!"
	MsgLeadSentContact    = "Спасибо! Ваша заявка отправлена, скоро свяжемся."
	MsgNoAdmins           = "Заявка принята. Внимание: операторы ещё не подключили бота и пока не получают заявки."
	MsgInternalError      = "Произошла ошибка. Попробуйте позже"
)

// MsgChooseBank is a format string taking the selected country.
const MsgChooseBank = "Страна: %s. Выберите банк:"
