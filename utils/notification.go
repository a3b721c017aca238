package utils

import (
	"os"
	"strconv"

	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"gopkg.in/gomail.v2"
)

// NotificationEvent is the payload of one "notify user X of event Y" request
type NotificationEvent struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Href        string `json:"href"`
}

// Notify records an in-app notification for the user and mirrors it to their
// email when SMTP is configured. Fire-and-forget: failures are logged and
// swallowed, never surfaced to the operation that triggered them.
func Notify(userID uint, event NotificationEvent) {
	notification := models.Notification{
		UserID:      userID,
		Icon:        event.Icon,
		Title:       event.Title,
		Description: event.Description,
		Href:        event.Href,
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		LogError("Failed to store notification for user %d: %v", userID, err)
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		LogError("Failed to load user %d for notification email: %v", userID, err)
		return
	}
	if err := sendNotificationEmail(user.Email, event.Title, event.Description); err != nil {
		LogError("Failed to email notification to user %d: %v", userID, err)
	}
}

func sendNotificationEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", "<p>"+body+"</p>")

	d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	return d.DialAndSend(m)
}
