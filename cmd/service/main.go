package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"gitlab.com/multycomm/enquiry-service/internal/config"
	"gitlab.com/multycomm/enquiry-service/internal/mail"
	"gitlab.com/multycomm/enquiry-service/internal/service"
)

// Usage example on the command line:
// > PORT=8080 DBHOST=localhost DBUSER=dirk DBPWD=bullo92 SMTP_HOST=smtp.example.com SMTP_USER=forms@example.com SMTP_PASS=secret GIN_MODE=release go run main.go
func main() {
	cfg, err := config.Build()
	if err != nil {
		log.Fatal(err)
	}

	sqlDB := service.CreateDatabase(cfg.Database)
	service.SetupDatabaseWrapper(sqlDB)
	service.SetupMailer(mail.NewSMTP(cfg.SMTP))
	service.SetupRouting(cfg.Routing)
	router := service.SetupHttpRouter()

	log.WithField("port", cfg.Server.Port).Info("starting enquiry service")
	if err := router.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatal(err)
	}
}
