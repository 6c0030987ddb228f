package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WelcomeMailData struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

type InvitationMailData struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
	Position    string `json:"position"`
}

type ResetPasswordMailData struct {
	Name       string `json:"name"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}
