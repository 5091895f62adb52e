package http

import (
	"net/http"
	"strconv"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// CreateShipment handles POST /api/v1/shipments. The body is JSON, or a
// multipart form with the same field names and files under "documents".
func (s *Server) CreateShipment(c echo.Context) error {
	req, docs, err := readCreateShipment(c)
	if err != nil {
		return unreadable(c, "Invalid request body", err)
	}

	var addressBookID *kernel.UUID
	if req.AddressBookID != "" {
		id, idErr := kernel.UUIDFromString(req.AddressBookID)
		if idErr != nil {
			return badRequest(c, "Invalid address book id", idErr)
		}
		addressBookID = &id
	}

	p := principalOf(c)
	cmd, err := commands.NewCreateShipmentCommand(p, services.ShipmentInput{
		Receiver:        req.Receiver,
		Description:     req.Description,
		Weight:          string(req.Weight),
		PackageSize:     req.PackageSize,
		DeliveryAddress: req.DeliveryAddress,
	}, addressBookID, docs, req.PaymentMethod, req.SkipPayment)
	if err != nil {
		return badRequest(c, "Invalid shipment", err)
	}

	result, err := s.h.CreateShipment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, CreateShipmentResponse{
		Shipment:     s.shipmentResponse(p, result.Shipment),
		UploadErrors: errorStrings(result.UploadErrors),
	})
}

func readCreateShipment(c echo.Context) (CreateShipmentRequest, []ports.Document, error) {
	var req CreateShipmentRequest
	if !isMultipart(c) {
		if err := c.Bind(&req); err != nil {
			return req, nil, err
		}
		return req, inlineDocuments(req.Documents), nil
	}

	skip, _ := strconv.ParseBool(c.FormValue("skipPayment"))
	req = CreateShipmentRequest{
		Receiver:        c.FormValue("receiver"),
		Description:     c.FormValue("description"),
		Weight:          flexibleString(c.FormValue("weight")),
		PackageSize:     c.FormValue("packageSize"),
		DeliveryAddress: c.FormValue("deliveryAddress"),
		AddressBookID:   c.FormValue("addressBookId"),
		PaymentMethod:   c.FormValue("paymentMethod"),
		SkipPayment:     skip,
	}
	docs, err := formDocuments(c, "documents")
	return req, docs, err
}

// BulkImportShipments handles POST /api/v1/shipments/bulk. The CSV is the raw
// body, or the "file" field of a multipart form.
func (s *Server) BulkImportShipments(c echo.Context) error {
	var content []byte
	if isMultipart(c) {
		fh, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, "Missing file", err)
		}
		if content, err = readFormFile(fh, MaxBulkBytes); err != nil {
			return unreadable(c, "Unreadable file", err)
		}
	} else {
		var err error
		if content, err = readLimited(c.Request().Body, MaxBulkBytes); err != nil {
			return unreadable(c, "Unreadable body", err)
		}
	}

	cmd, err := commands.NewBulkImportShipmentsCommand(principalOf(c), content)
	if err != nil {
		return badRequest(c, "Invalid bulk import", err)
	}

	result, err := s.h.BulkImport.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toBulkImportResponse(result))
}

// ListShipments handles GET /api/v1/shipments: the caller's sent and received shipments.
func (s *Server) ListShipments(c echo.Context) error {
	query, err := queries.NewListParticipantShipmentsQuery(principalOf(c))
	if err != nil {
		return badRequest(c, "Invalid query", err)
	}

	list, err := s.h.ListParticipantShipments.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toShipmentSummaries(list))
}

// GetShipment handles GET /api/v1/shipments/:id.
func (s *Server) GetShipment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid shipment id", err)
	}
	query, err := queries.NewGetShipmentQuery(principalOf(c), id)
	if err != nil {
		return badRequest(c, "Invalid query", err)
	}

	view, err := s.h.GetShipment.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toShipment(view))
}

// GetShipmentByTrackingNumber handles GET /api/v1/shipments/tracking/:trackingNumber.
func (s *Server) GetShipmentByTrackingNumber(c echo.Context) error {
	query, err := queries.NewGetShipmentByTrackingNumberQuery(principalOf(c), c.Param("trackingNumber"))
	if err != nil {
		return badRequest(c, "Invalid tracking number", err)
	}

	view, err := s.h.GetShipmentByTracking.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toShipment(view))
}

// UpdateShipmentStatus handles POST /api/v1/shipments/:id/status.
func (s *Server) UpdateShipmentStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid shipment id", err)
	}
	var req UpdateStatusRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	target, err := shipment.ParseStatus(req.Status)
	if err != nil {
		return badRequest(c, "Invalid status", err)
	}

	p := principalOf(c)
	cmd, err := commands.NewUpdateShipmentStatusCommand(p, id, target)
	if err != nil {
		return badRequest(c, "Invalid status update", err)
	}

	updated, err := s.h.UpdateStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, s.shipmentResponse(p, updated))
}

// EditShipment handles PATCH /api/v1/shipments/:id. Only the description can change.
func (s *Server) EditShipment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid shipment id", err)
	}
	var req EditShipmentRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	p := principalOf(c)
	cmd, err := commands.NewEditShipmentDescriptionCommand(p, id, req.Description)
	if err != nil {
		return badRequest(c, "Invalid edit", err)
	}

	updated, err := s.h.EditDescription.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, s.shipmentResponse(p, updated))
}

// CancelShipment handles DELETE /api/v1/shipments/:id.
func (s *Server) CancelShipment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid shipment id", err)
	}
	cmd, err := commands.NewCancelShipmentCommand(principalOf(c), id)
	if err != nil {
		return badRequest(c, "Invalid cancellation", err)
	}

	if err = s.h.CancelShipment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AttachDocuments handles POST /api/v1/shipments/:id/documents with files
// under "documents", or inline documents in JSON.
func (s *Server) AttachDocuments(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid shipment id", err)
	}

	var docs []ports.Document
	if isMultipart(c) {
		docs, err = formDocuments(c, "documents")
	} else {
		var req AttachDocumentsRequest
		err = c.Bind(&req)
		docs = inlineDocuments(req.Documents)
	}
	if err != nil {
		return unreadable(c, "Invalid request body", err)
	}

	cmd, err := commands.NewAttachDocumentsCommand(principalOf(c), id, docs)
	if err != nil {
		return badRequest(c, "Invalid documents", err)
	}

	result, err := s.h.AttachDocuments.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, AttachDocumentsResponse{
		Documents:    result.References,
		UploadErrors: errorStrings(result.UploadErrors),
	})
}

// ListComments handles GET /api/v1/shipments/:id/comments.
func (s *Server) ListComments(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid shipment id", err)
	}
	query, err := queries.NewListCommentsQuery(principalOf(c), id)
	if err != nil {
		return badRequest(c, "Invalid query", err)
	}

	list, err := s.h.ListComments.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	out := make([]Comment, 0, len(list))
	for _, v := range list {
		out = append(out, toComment(v))
	}
	return c.JSON(http.StatusOK, out)
}

// AddComment handles POST /api/v1/shipments/:id/comments.
func (s *Server) AddComment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid shipment id", err)
	}
	var req CommentRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	cmd, err := commands.NewAddCommentCommand(principalOf(c), id, req.Text)
	if err != nil {
		return badRequest(c, "Invalid comment", err)
	}

	comment, err := s.h.AddComment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toComment(queries.NewCommentView(comment)))
}

// SubmitFeedback handles POST /api/v1/shipments/:id/feedback.
func (s *Server) SubmitFeedback(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid shipment id", err)
	}
	var req FeedbackRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	p := principalOf(c)
	cmd, err := commands.NewSubmitFeedbackCommand(p, id, req.Rating, req.Comment)
	if err != nil {
		return badRequest(c, "Invalid feedback", err)
	}

	updated, err := s.h.SubmitFeedback.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, s.shipmentResponse(p, updated))
}
