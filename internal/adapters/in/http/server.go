package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/addressbook"
	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const (
	// MaxDocumentBytes limits a single uploaded document.
	MaxDocumentBytes = 10 << 20

	// MaxBulkBytes limits a bulk CSV upload.
	MaxBulkBytes = 5 << 20
)

// Handler is a command or query handler that returns a result.
type Handler[Req, Res any] interface {
	Handle(ctx context.Context, req Req) (Res, error)
}

// Executor is a command handler that returns only an error.
type Executor[Req any] interface {
	Handle(ctx context.Context, req Req) error
}

// Handlers are the use cases the server exposes.
type Handlers struct {
	CreateShipment         Handler[commands.CreateShipmentCommand, commands.CreationResult]
	BulkImport             Handler[commands.BulkImportShipmentsCommand, commands.BulkImportResult]
	UpdateStatus           Handler[commands.UpdateShipmentStatusCommand, *shipment.Shipment]
	EditDescription        Handler[commands.EditShipmentDescriptionCommand, *shipment.Shipment]
	CancelShipment         Executor[commands.CancelShipmentCommand]
	AttachDocuments        Handler[commands.AttachDocumentsCommand, commands.AttachDocumentsResult]
	AddComment             Handler[commands.AddCommentCommand, *shipment.Comment]
	SubmitFeedback         Handler[commands.SubmitFeedbackCommand, *shipment.Shipment]
	SaveAddressBookEntry   Handler[commands.SaveAddressBookEntryCommand, *addressbook.Entry]
	DeleteAddressBookEntry Executor[commands.DeleteAddressBookEntryCommand]
	ChangeUserRole         Handler[commands.ChangeUserRoleCommand, *identity.User]

	GetShipment              Handler[queries.GetShipmentQuery, queries.ShipmentView]
	GetShipmentByTracking    Handler[queries.GetShipmentByTrackingNumberQuery, queries.ShipmentView]
	ListParticipantShipments Handler[queries.ListParticipantShipmentsQuery, []queries.ShipmentSummary]
	ListComments             Handler[queries.ListCommentsQuery, []queries.CommentView]
	ListAddressBook          Handler[queries.ListAddressBookQuery, []queries.AddressBookEntryView]
	ListUsers                Handler[queries.ListUsersQuery, []queries.UserView]
}

// Server adapts HTTP requests to commands and queries.
type Server struct {
	h      Handlers
	engine services.StatusTransitionEngine
	logger *slog.Logger
}

// NewServer creates the server. The engine computes the transitions offered
// in shipment responses after a write.
func NewServer(h Handlers, engine services.StatusTransitionEngine, logger *slog.Logger) *Server {
	return &Server{h: h, engine: engine, logger: logger.With("component", "http")}
}

// Register mounts every route under /api/v1. Everything except the health
// check requires auth.
func (s *Server) Register(e *echo.Echo, auth echo.MiddlewareFunc) {
	api := e.Group("/api/v1")
	api.GET("/health", s.Health)

	secured := api.Group("", auth)

	secured.POST("/shipments", s.CreateShipment)
	secured.POST("/shipments/bulk", s.BulkImportShipments)
	secured.GET("/shipments", s.ListShipments)
	secured.GET("/shipments/tracking/:trackingNumber", s.GetShipmentByTrackingNumber)
	secured.GET("/shipments/:id", s.GetShipment)
	secured.POST("/shipments/:id/status", s.UpdateShipmentStatus)
	secured.PATCH("/shipments/:id", s.EditShipment)
	secured.DELETE("/shipments/:id", s.CancelShipment)
	secured.POST("/shipments/:id/documents", s.AttachDocuments)
	secured.GET("/shipments/:id/comments", s.ListComments)
	secured.POST("/shipments/:id/comments", s.AddComment)
	secured.POST("/shipments/:id/feedback", s.SubmitFeedback)

	secured.GET("/address-book", s.ListAddressBook)
	secured.POST("/address-book", s.CreateAddressBookEntry)
	secured.PUT("/address-book/:id", s.UpdateAddressBookEntry)
	secured.DELETE("/address-book/:id", s.DeleteAddressBookEntry)

	secured.GET("/users", s.ListUsers)
	secured.PUT("/users/:email/role", s.ChangeUserRole)
}

// Health handles GET /api/v1/health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) shipmentResponse(p identity.Principal, sh *shipment.Shipment) Shipment {
	return toShipment(queries.NewShipmentView(sh, s.engine.AllowedTargets(p, sh)))
}

func pathID(c echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param("id"))
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// formDocuments reads the files of a multipart field.
func formDocuments(c echo.Context, field string) ([]ports.Document, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	files := form.File[field]
	docs := make([]ports.Document, 0, len(files))
	for _, fh := range files {
		content, readErr := readFormFile(fh, MaxDocumentBytes)
		if readErr != nil {
			return nil, readErr
		}
		docs = append(docs, ports.Document{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Content:     content,
		})
	}
	return docs, nil
}

// errTooLarge marks input over its byte limit.
var errTooLarge = errors.New("content too large")

func readFormFile(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	if fh.Size > limit {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", errTooLarge, fh.Filename, limit)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f, limit)
}

// readLimited reads all of r and fails instead of truncating when r holds
// more than limit bytes.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	content, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", errTooLarge, limit)
	}
	return content, nil
}

func inlineDocuments(uploads []DocumentUpload) []ports.Document {
	docs := make([]ports.Document, 0, len(uploads))
	for _, u := range uploads {
		docs = append(docs, ports.Document{FileName: u.FileName, ContentType: u.ContentType, Content: u.Content})
	}
	return docs
}
