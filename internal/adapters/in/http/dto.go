package http

import (
	"bytes"
	"encoding/json"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/shipment"
)

// flexibleString accepts a JSON string or number, so weight can be sent as
// 1200 or "1200".
type flexibleString string

func (f *flexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleString(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleString(n.String())
	return nil
}

// DocumentUpload is a document sent inline in a JSON body. Content is base64.
type DocumentUpload struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"content"`
}

type CreateShipmentRequest struct {
	Receiver        string           `json:"receiver"`
	Description     string           `json:"description"`
	Weight          flexibleString   `json:"weight"`
	PackageSize     string           `json:"packageSize"`
	DeliveryAddress string           `json:"deliveryAddress"`
	AddressBookID   string           `json:"addressBookId"`
	PaymentMethod   string           `json:"paymentMethod"`
	SkipPayment     bool             `json:"skipPayment"`
	Documents       []DocumentUpload `json:"documents"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type EditShipmentRequest struct {
	Description string `json:"description"`
}

type AttachDocumentsRequest struct {
	Documents []DocumentUpload `json:"documents"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type AddressBookEntryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type HistoryEntry struct {
	Status    string    `json:"status"`
	UpdatedBy string    `json:"updatedBy"`
	Timestamp time.Time `json:"timestamp"`
}

type Payment struct {
	PaymentID  string    `json:"paymentId"`
	OrderID    string    `json:"orderId"`
	PayerEmail string    `json:"payerEmail"`
	PaidAt     time.Time `json:"paidAt"`
}

type Feedback struct {
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	By          string    `json:"by"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type Shipment struct {
	ID                 string         `json:"id"`
	TrackingNumber     string         `json:"trackingNumber"`
	Sender             string         `json:"sender"`
	Receiver           string         `json:"receiver"`
	Description        string         `json:"description"`
	WeightGrams        int            `json:"weightGrams"`
	PackageSize        string         `json:"packageSize"`
	DeliveryAddress    string         `json:"deliveryAddress"`
	Amount             int            `json:"amount"`
	Status             string         `json:"status"`
	StatusHistory      []HistoryEntry `json:"statusHistory"`
	Documents          []string       `json:"documents"`
	CreatedAt          time.Time      `json:"createdAt"`
	ETA                time.Time      `json:"eta"`
	Payment            *Payment       `json:"payment"`
	Feedback           *Feedback      `json:"feedback"`
	AllowedTransitions []string       `json:"allowedTransitions"`
}

type ShipmentSummary struct {
	ID             string    `json:"id"`
	TrackingNumber string    `json:"trackingNumber"`
	Sender         string    `json:"sender"`
	Receiver       string    `json:"receiver"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	Amount         int       `json:"amount"`
	CreatedAt      time.Time `json:"createdAt"`
	ETA            time.Time `json:"eta"`
	Outgoing       bool      `json:"outgoing"`
}

type CreateShipmentResponse struct {
	Shipment     Shipment `json:"shipment"`
	UploadErrors []string `json:"uploadErrors"`
}

type AttachDocumentsResponse struct {
	Documents    []string `json:"documents"`
	UploadErrors []string `json:"uploadErrors"`
}

type BulkImportResponse struct {
	SuccessCount    int      `json:"successCount"`
	FailedCount     int      `json:"failedCount"`
	Errors          []string `json:"errors"`
	TrackingNumbers []string `json:"trackingNumbers"`
}

type Comment struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	AuthorEmail string    `json:"authorEmail"`
	AuthorName  string    `json:"authorName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AddressBookEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type User struct {
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

func statusNames(statuses []shipment.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.String())
	}
	return out
}

func errorStrings(errList []error) []string {
	out := make([]string, 0, len(errList))
	for _, err := range errList {
		out = append(out, err.Error())
	}
	return out
}

func toShipment(v queries.ShipmentView) Shipment {
	history := make([]HistoryEntry, 0, len(v.History))
	for _, h := range v.History {
		history = append(history, HistoryEntry{Status: h.Status.String(), UpdatedBy: h.UpdatedBy, Timestamp: h.Timestamp})
	}

	out := Shipment{
		ID:                 v.ID.String(),
		TrackingNumber:     v.TrackingNumber,
		Sender:             v.Sender,
		Receiver:           v.Receiver,
		Description:        v.Description,
		WeightGrams:        v.WeightGrams,
		PackageSize:        v.PackageSize,
		DeliveryAddress:    v.DeliveryAddress,
		Amount:             v.Amount,
		Status:             v.Status.String(),
		StatusHistory:      history,
		Documents:          v.Documents,
		CreatedAt:          v.CreatedAt,
		ETA:                v.ETA,
		AllowedTransitions: statusNames(v.AllowedTargets),
	}
	if out.Documents == nil {
		out.Documents = []string{}
	}
	if p := v.Payment; p != nil {
		out.Payment = &Payment{PaymentID: p.PaymentID, OrderID: p.OrderID, PayerEmail: p.PayerEmail, PaidAt: p.PaidAt}
	}
	if f := v.Feedback; f != nil {
		out.Feedback = &Feedback{Rating: f.Rating, Comment: f.Comment, By: f.By, SubmittedAt: f.SubmittedAt}
	}
	return out
}

func toShipmentSummaries(views []queries.ShipmentSummary) []ShipmentSummary {
	out := make([]ShipmentSummary, 0, len(views))
	for _, v := range views {
		out = append(out, ShipmentSummary{
			ID:             v.ID.String(),
			TrackingNumber: v.TrackingNumber,
			Sender:         v.Sender,
			Receiver:       v.Receiver,
			Description:    v.Description,
			Status:         v.Status.String(),
			Amount:         v.Amount,
			CreatedAt:      v.CreatedAt,
			ETA:            v.ETA,
			Outgoing:       v.Outgoing,
		})
	}
	return out
}

func toBulkImportResponse(r commands.BulkImportResult) BulkImportResponse {
	out := BulkImportResponse{
		SuccessCount:    r.SuccessCount,
		FailedCount:     r.FailedCount,
		Errors:          r.Errors,
		TrackingNumbers: r.TrackingNumbers,
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	if out.TrackingNumbers == nil {
		out.TrackingNumbers = []string{}
	}
	return out
}

func toComment(v queries.CommentView) Comment {
	return Comment{
		ID:          v.ID.String(),
		Text:        v.Text,
		AuthorEmail: v.AuthorEmail,
		AuthorName:  v.AuthorName,
		CreatedAt:   v.CreatedAt,
	}
}

func toAddressBookEntry(v queries.AddressBookEntryView) AddressBookEntry {
	return AddressBookEntry{
		ID:        v.ID.String(),
		Name:      v.Name,
		Email:     v.Email,
		Address:   v.Address,
		UpdatedAt: v.UpdatedAt,
	}
}

func toUser(v queries.UserView) User {
	return User{Email: v.Email, DisplayName: v.DisplayName, Role: v.Role.String(), CreatedAt: v.CreatedAt}
}
