package model

// EnquiryRequest is the JSON body a caller posts to the /enquiry endpoint.
// Only name, email, and disposition are required. Age may be sent as a
// JSON number as well; the string form matches what HTML form inputs
// naturally produce.
type EnquiryRequest struct {
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Age         string `json:"age,omitempty"`
	Email       string `json:"email"`
	Contact     string `json:"contact,omitempty"`
	Query       string `json:"query,omitempty"`
	Disposition string `json:"disposition"`
}

// EnquiryResponse is the envelope returned for every submission. Id is set
// whenever a record was persisted, including the case where the record was
// saved but the notification email could not be delivered.
type EnquiryResponse struct {
	OK      bool   `json:"ok"`
	Id      int64  `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}
