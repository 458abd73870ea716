package bot

// Command constants for Telegram bot commands.
const (
	CommandStart = "/start"
	CommandMenu  = "/menu"
	CommandBuy   = "/buy"
)
