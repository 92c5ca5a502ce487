package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"gitlab.com/multycomm/enquiry-service/pkg/model"
)

const serverPort = 8080

// This client stands in for the browser form: it posts one sample enquiry
// per disposition and prints the service's replies.
//
// Usage example on the command line:
// > go run main.go
func main() {
	samples := []model.EnquiryRequest{
		{
			Name:        "Asha Rao",
			Company:     "Rao Textiles",
			Gender:      "Female",
			Age:         "41",
			Email:       "asha@raotextiles.example",
			Contact:     "+91 98 7654 3210",
			Query:       "Looking for a bulk order quotation.",
			Disposition: "New Lead",
		},
		{
			Name:        "Bo Lin",
			Email:       "bo@lin.example",
			Query:       "My last invoice looks wrong.",
			Disposition: "Customer Support",
		},
		{
			Name:        "Chandra Iyer",
			Company:     "Iyer Consulting",
			Email:       "chandra@iyer.example",
			Disposition: "Consultant Support",
		},
		{
			Name:        "Dana Petrov",
			Company:     "Petrov Logistics",
			Email:       "dana@petrov.example",
			Query:       "Interested in a reseller agreement.",
			Disposition: "B2B Lead",
		},
		{
			Name:        "Eli Novak",
			Email:       "eli@novak.example",
			Query:       "Where are you located?",
			Disposition: "General Enquiry",
		},
	}
	for _, sample := range samples {
		submitEnquiry(sample)
	}
}

// submitEnquiry posts one enquiry and prints the decoded reply.
func submitEnquiry(enquiry model.EnquiryRequest) {
	payload, err := json.Marshal(enquiry)
	if err != nil {
		fmt.Println("could not marshal JSON", err)
		panic(err)
	}
	requestURL := fmt.Sprintf("http://localhost:%d/enquiry", serverPort)
	res, err := http.Post(requestURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Println("error making http request", err)
		panic(err)
	}
	defer res.Body.Close()

	var reply model.EnquiryResponse
	if err := json.NewDecoder(res.Body).Decode(&reply); err != nil {
		fmt.Println("could not unmarshal JSON", err)
		panic(err)
	}
	fmt.Printf("%-20s status=%d ok=%t id=%d %s\n",
		enquiry.Disposition, res.StatusCode, reply.OK, reply.Id, reply.Message)
}
