package mail

// HostAlertData feeds the host alert template.
type HostAlertData struct {
	Name        string
	MaskedPhone string
	Location    string
	Topic       string
	Priority    string
	Status      string
	Prioritized bool
	Returning   bool
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
