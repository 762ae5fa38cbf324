package notifier

import (
	"fmt"

	"crossfit-api/pkg/utils"

	"go.uber.org/zap"
)

const (
	DriverLog   = "log"
	DriverSMTP  = "smtp"
	DriverKafka = "kafka"
)

// New builds the notifier selected by MAIL_DRIVER
func New(config *utils.Config, log *zap.Logger) (Notifier, error) {
	links := LinkBuilder{BaseURL: config.App.BaseURL}

	switch config.Mail.Driver {
	case DriverLog, "":
		return NewLogNotifier(links, log), nil

	case DriverSMTP:
		if config.Mail.Host == "" || config.Mail.From == "" {
			return nil, fmt.Errorf("smtp driver needs SMTP_HOST and EMAIL_FROM")
		}
		return NewSMTPNotifier(SMTPConfig{
			Host:     config.Mail.Host,
			Port:     config.Mail.Port,
			User:     config.Mail.User,
			Password: config.Mail.Password,
			From:     config.Mail.From,
		}, links, log), nil

	case DriverKafka:
		if config.Kafka.Broker == "" {
			return nil, fmt.Errorf("kafka driver needs KAFKA_BROKER")
		}
		writer := NewKafkaWriter(KafkaConfig{
			Broker:   config.Kafka.Broker,
			Topic:    config.Kafka.Topic,
			User:     config.Kafka.User,
			Password: config.Kafka.Password,
		})
		return NewKafkaNotifier(writer, links, log), nil

	default:
		return nil, fmt.Errorf("unknown mail driver %q", config.Mail.Driver)
	}
}
