package service

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"

	"gitlab.com/multycomm/enquiry-service/internal/config"
	"gitlab.com/multycomm/enquiry-service/internal/mail"
	"gitlab.com/multycomm/enquiry-service/internal/model"
	apimodel "gitlab.com/multycomm/enquiry-service/pkg/model"
)

// The disposition labels the form offers. Values outside this set are
// accepted and stored anyway; they simply never route to a mailbox.
const (
	DispositionCustomerSupport   = "Customer Support"
	DispositionConsultantSupport = "Consultant Support"
	DispositionB2BLead           = "B2B Lead"
	DispositionNewLead           = "New Lead"
	DispositionGeneralEnquiry    = "General Enquiry"
)

// notificationSubject is the subject line of every routed notification.
const notificationSubject = "New Client Enquiry from MultyComm Form"

// emailPattern is the basic local@domain.tld shape accepted by the form.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// db is a handle to the database.
var db *sqlx.DB

// insert is a prepared statement for creating an enquiry on the database.
var insert *sqlx.NamedStmt

// mailer dispatches notification emails to the routed mailbox.
var mailer mail.Mailer

// routes maps a disposition label to its destination mailbox. Labels
// without an entry, "General Enquiry" included, route nowhere.
var routes map[string]string

// CreateDatabase initializes and returns a database connection with the
// specified connection parameters.
func CreateDatabase(cfg config.DatabaseCfg) *sql.DB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
		cfg.User, cfg.Password, cfg.Host, cfg.Name)
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatal(err)
	}
	return sqlDB
}

// SetupDatabaseWrapper initializes the sqlx database wrapper with the
// specified sql database. It then prepares the insert statement. The
// database argument can be a real database for production use or a mock
// database within unit tests.
func SetupDatabaseWrapper(sqlDB *sql.DB) {
	var err error
	db = sqlx.NewDb(sqlDB, "mysql")

	// The insert runs on every submission, so prepare it once.
	insert, err = db.PrepareNamed(`
		INSERT INTO enquiries (name, company, gender, age, email, contact, query, disposition)
		VALUES (:name, :company, :gender, :age, :email, :contact, :query, :disposition)
	`)
	if err != nil {
		log.Fatal(err)
	}
}

// SetupMailer initializes the mail collaborator. The argument can be the
// real SMTP mailer for production use or a fake within unit tests.
func SetupMailer(m mail.Mailer) {
	mailer = m
}

// SetupRouting builds the disposition routing table from the configuration.
func SetupRouting(cfg config.RoutingCfg) {
	routes = map[string]string{
		DispositionCustomerSupport:   cfg.CustomerSupport,
		DispositionConsultantSupport: cfg.ConsultantSupport,
		DispositionB2BLead:           cfg.B2BLead,
		DispositionNewLead:           cfg.NewLead,
	}
}

// SetupHttpRouter initializes the REST API router and registers all
// endpoints.
func SetupHttpRouter() *gin.Engine {
	var router *gin.Engine
	if strings.EqualFold(os.Getenv("GIN_LOGGING"), "off") {
		fmt.Println("Turning off HTTP request logging.")
		router = gin.New()
	} else {
		router = gin.Default()
	}
	router.POST("/enquiry", submitEnquiry)
	router.GET("/healthz", healthCheck)
	return router
}

// submitEnquiry validates the posted form payload, persists it, and
// dispatches a notification email when the disposition routes to a mailbox.
//
// The record is written before any mail is attempted, so a slow or dead
// mail transport can never lose a lead. The converse is accepted: when the
// dispatch fails after a successful insert, the response carries the
// generated id together with a 500 status, so callers can tell "submission
// lost" from "submission saved, notification undelivered".
//
// Example REST API call:
//
//	> curl http://localhost:8080/enquiry --request "POST" --include --header "Content-Type: application/json" --data '{"name": "Asha Rao", "email": "asha@x.com", "disposition": "New Lead"}'
func submitEnquiry(c *gin.Context) {
	var body map[string]any
	if err := c.BindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			apimodel.EnquiryResponse{Message: "invalid JSON"})
		return
	}

	enquiry, err := validateEnquiry(body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			apimodel.EnquiryResponse{Message: err.Error()})
		return
	}

	result, err := insert.Exec(&enquiry)
	if err != nil {
		log.WithError(err).Error("failed to save enquiry")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			apimodel.EnquiryResponse{Message: "failed to save enquiry"})
		return
	}
	id, err := result.LastInsertId()
	if err != nil {
		log.WithError(err).Error("failed to read generated enquiry id")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			apimodel.EnquiryResponse{Message: "failed to save enquiry"})
		return
	}
	enquiry.Id = id

	if to := routes[enquiry.Disposition]; to != "" {
		if err := mailer.Send(to, notificationSubject, notificationBody(enquiry)); err != nil {
			log.WithError(err).WithField("id", id).
				Error("enquiry saved but notification failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				apimodel.EnquiryResponse{
					Id:      id,
					Message: "enquiry saved but notification failed",
				})
			return
		}
	}

	c.IndentedJSON(http.StatusCreated, apimodel.EnquiryResponse{OK: true, Id: id})
}

// healthCheck reports whether the service can reach its database.
func healthCheck(c *gin.Context) {
	if err := db.Ping(); err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"status": "ok"})
}

// validateEnquiry checks the loosely-typed request body and produces a
// normalized enquiry record. The checks run in order and the first failing
// rule wins. Nothing beyond the wire shape is trusted before this point.
func validateEnquiry(body map[string]any) (model.Enquiry, error) {
	var enquiry model.Enquiry

	enquiry.Name = trimmedField(body, "name")
	if enquiry.Name == "" {
		return enquiry, errors.New("name is required")
	}

	enquiry.Email = trimmedField(body, "email")
	if enquiry.Email == "" {
		return enquiry, errors.New("email is required")
	}
	if !emailPattern.MatchString(enquiry.Email) {
		return enquiry, errors.New("email is not a valid address")
	}

	enquiry.Disposition = trimmedField(body, "disposition")
	if enquiry.Disposition == "" {
		return enquiry, errors.New("disposition is required")
	}

	age, err := parseAge(body["age"])
	if err != nil {
		return enquiry, err
	}
	enquiry.Age = age

	enquiry.Company = trimmedField(body, "company")
	enquiry.Gender = trimmedField(body, "gender")
	enquiry.Contact = trimmedField(body, "contact")
	enquiry.Query = trimmedField(body, "query")
	return enquiry, nil
}

// trimmedField returns the named field as a whitespace-trimmed string. A
// field that is absent or not a string yields the empty string.
func trimmedField(body map[string]any, key string) string {
	value, ok := body[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// parseAge accepts a JSON number or a numeric string. A nil result means
// the age was not provided; it is stored as NULL so that "not provided"
// stays distinguishable from an age of zero.
func parseAge(value any) (*int, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case float64:
		if v < 0 {
			return nil, errors.New("age must be a non-negative number")
		}
		age := int(v)
		return &age, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		age, err := strconv.Atoi(trimmed)
		if err != nil || age < 0 {
			return nil, errors.New("age must be a non-negative number")
		}
		return &age, nil
	default:
		return nil, errors.New("age must be a non-negative number")
	}
}

// notificationBody renders the plain-text notification for a routed
// enquiry. The submitted values are embedded verbatim.
func notificationBody(enquiry model.Enquiry) string {
	age := ""
	if enquiry.Age != nil {
		age = strconv.Itoa(*enquiry.Age)
	}
	return fmt.Sprintf(`Greetings!

We have received an inquiry for the client detailed below. Please provide them with the necessary assistance.

Client/Caller Name: %s
Company: %s
Gender: %s
Age: %s
Email: %s
Query: %s

Thank You!
`, enquiry.Name, enquiry.Company, enquiry.Gender, age, enquiry.Email, enquiry.Query)
}
