package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/addressbook"
	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	secret        = []byte("test-secret")
	senderEmail   = kernel.MustEmail("sender@example.com")
	receiverEmail = kernel.MustEmail("receiver@example.com")
	adminEmail    = kernel.MustEmail("admin@example.com")
	createdAt     = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
)

type handlerFunc[Req, Res any] func(ctx context.Context, req Req) (Res, error)

func (f handlerFunc[Req, Res]) Handle(ctx context.Context, req Req) (Res, error) { return f(ctx, req) }

type executorFunc[Req any] func(ctx context.Context, req Req) error

func (f executorFunc[Req]) Handle(ctx context.Context, req Req) error { return f(ctx, req) }

// registrar hands out stored users; unknown emails become plain users.
type registrar struct {
	roles map[string]identity.Role
	err   error
}

func (r registrar) Handle(_ context.Context, cmd commands.RegisterUserCommand) (*identity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	role, ok := r.roles[cmd.Email().String()]
	if !ok {
		role = identity.RoleUser
	}
	return identity.RestoreUser(cmd.Email(), cmd.DisplayName(), role, createdAt)
}

func newEcho(h httpadapter.Handlers, users httpadapter.UserRegistrar) *echo.Echo {
	e := echo.New()
	engine := services.NewStatusTransitionEngine(services.NewAuthorizationPolicy())
	httpadapter.NewServer(h, engine, slog.New(slog.DiscardHandler)).
		Register(e, httpadapter.NewAuthenticator(secret, users).Middleware())
	return e
}

func token(t *testing.T, email, name string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, httpadapter.Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(secret)
	require.NoError(t, err)
	return signed
}

func do(t *testing.T, e *echo.Echo, method, target, email string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if _, isString := body.(string); !isString && body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if email != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, email, ""))
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	tn, err := shipment.NewTrackingNumber("CSQWERTY1234")
	require.NoError(t, err)
	parcel, err := shipment.NewParcel(receiverEmail, "ceramic mugs", 1200, "Medium", "7 Lake Road")
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), tn, senderEmail, parcel, 170, nil, nil, createdAt)
	require.NoError(t, err)
	s.PullDomainEvents()
	return s
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth_NeedsNoToken(t *testing.T) {
	rec := do(t, newEcho(httpadapter.Handlers{}, registrar{}), http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthentication(t *testing.T) {
	e := newEcho(httpadapter.Handlers{}, registrar{})

	t.Run("missing header", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/shipments", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong signature", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, httpadapter.Claims{Email: "sender@example.com"}).
			SignedString([]byte("another-secret"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/shipments", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+forged)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, httpadapter.Claims{
			Email:            "sender@example.com",
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
		}).SignedString(secret)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/shipments", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+expired)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without email", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/shipments", "not-an-email", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("user store failure", func(t *testing.T) {
		failing := newEcho(httpadapter.Handlers{}, registrar{err: assert.AnError})
		rec := do(t, failing, http.MethodGet, "/api/v1/shipments", "sender@example.com", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestCreateShipment_JSON(t *testing.T) {
	stored := newShipment(t)
	var got commands.CreateShipmentCommand

	e := newEcho(httpadapter.Handlers{
		CreateShipment: handlerFunc[commands.CreateShipmentCommand, commands.CreationResult](
			func(_ context.Context, cmd commands.CreateShipmentCommand) (commands.CreationResult, error) {
				got = cmd
				return commands.CreationResult{
					Shipment:     stored,
					UploadErrors: []error{errs.NewUploadError("label.png", context.DeadlineExceeded)},
				}, nil
			}),
	}, registrar{})

	rec := do(t, e, http.MethodPost, "/api/v1/shipments", "sender@example.com", map[string]any{
		"receiver":        "receiver@example.com",
		"description":     "ceramic mugs",
		"weight":          1200,
		"packageSize":     "Medium",
		"deliveryAddress": "7 Lake Road",
		"skipPayment":     true,
		"documents":       []map[string]any{{"fileName": "label.png", "content": []byte{1, 2}}},
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, got.Principal().Email().IsEqual(senderEmail))
	assert.Equal(t, "1200", got.Input().Weight)
	assert.True(t, got.SkipPayment())
	require.Len(t, got.Documents(), 1)
	assert.Equal(t, []byte{1, 2}, got.Documents()[0].Content)

	body := decode[httpadapter.CreateShipmentResponse](t, rec)
	assert.Equal(t, "CSQWERTY1234", body.Shipment.TrackingNumber)
	assert.Equal(t, "Dispatched", body.Shipment.Status)
	assert.Equal(t, []string{"In Transit", "Delivered", "Returned", "Cancelled"}, body.Shipment.AllowedTransitions)
	require.Len(t, body.UploadErrors, 1)
	assert.Contains(t, body.UploadErrors[0], "label.png")
}

func TestCreateShipment_MultipartWithDocuments(t *testing.T) {
	var got commands.CreateShipmentCommand
	e := newEcho(httpadapter.Handlers{
		CreateShipment: handlerFunc[commands.CreateShipmentCommand, commands.CreationResult](
			func(_ context.Context, cmd commands.CreateShipmentCommand) (commands.CreationResult, error) {
				got = cmd
				return commands.CreationResult{Shipment: newShipment(t)}, nil
			}),
	}, registrar{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"receiver":        "receiver@example.com",
		"weight":          "1.5kg",
		"packageSize":     "Small",
		"deliveryAddress": "7 Lake Road",
		"paymentMethod":   "pm_card_visa",
	} {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("documents", "invoice.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.7"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shipments", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, "sender@example.com", "Sam Sender"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "1.5kg", got.Input().Weight)
	assert.Equal(t, "pm_card_visa", got.PaymentMethod())
	assert.False(t, got.SkipPayment())
	assert.Equal(t, "Sam Sender", got.Principal().DisplayName())
	require.Len(t, got.Documents(), 1)
	assert.Equal(t, "invoice.pdf", got.Documents()[0].FileName)
	assert.Equal(t, []byte("%PDF-1.7"), got.Documents()[0].Content)
}

func TestCreateShipment_RejectedBeforeHandler(t *testing.T) {
	e := newEcho(httpadapter.Handlers{}, registrar{})

	rec := do(t, e, http.MethodPost, "/api/v1/shipments", "sender@example.com", map[string]any{
		"receiver": "receiver@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "Payment method is required unless skipped")

	rec = do(t, e, http.MethodPost, "/api/v1/shipments", "sender@example.com", map[string]any{
		"skipPayment":   true,
		"addressBookId": "nope",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	id := kernel.NewUUID()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", errs.NewValidationError(errs.NewValueIsRequiredError("weight")), http.StatusBadRequest},
		{"not permitted", errs.NewAuthorizationError("view", "x@example.com"), http.StatusForbidden},
		{"not found", errs.NewObjectNotFoundError("shipment", id), http.StatusNotFound},
		{"invalid transition", errs.NewInvalidTransitionError("Delivered", "In Transit"), http.StatusUnprocessableEntity},
		{"conflict", errs.NewConflictError("shipment", id, "Dispatched"), http.StatusConflict},
		{"already exists", errs.NewAlreadyExistsError("feedback", id), http.StatusConflict},
		{"payment", errs.NewPaymentError("declined"), http.StatusPaymentRequired},
		{"anything else", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho(httpadapter.Handlers{
				GetShipment: handlerFunc[queries.GetShipmentQuery, queries.ShipmentView](
					func(context.Context, queries.GetShipmentQuery) (queries.ShipmentView, error) {
						return queries.ShipmentView{}, tt.err
					}),
			}, registrar{})

			rec := do(t, e, http.MethodGet, "/api/v1/shipments/"+id.String(), "sender@example.com", nil)

			assert.Equal(t, tt.want, rec.Code)
			body := decode[httpadapter.Error](t, rec)
			assert.Equal(t, tt.want, body.Code)
			if tt.want == http.StatusInternalServerError {
				assert.NotContains(t, body.Message, assert.AnError.Error())
			}
		})
	}
}

func TestErrorMapping_ValidationDetails(t *testing.T) {
	e := newEcho(httpadapter.Handlers{
		CreateShipment: handlerFunc[commands.CreateShipmentCommand, commands.CreationResult](
			func(context.Context, commands.CreateShipmentCommand) (commands.CreationResult, error) {
				return commands.CreationResult{}, errs.NewValidationError(
					errs.NewValueIsRequiredError("packageSize"),
					errs.NewValueIsInvalidError("receiver"),
				)
			}),
	}, registrar{})

	rec := do(t, e, http.MethodPost, "/api/v1/shipments", "sender@example.com", map[string]any{"skipPayment": true})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[httpadapter.Error](t, rec)
	assert.Equal(t, []string{"value is required: packageSize", "value is invalid: receiver"}, body.Details)
}

func TestGetShipment_InvalidID(t *testing.T) {
	rec := do(t, newEcho(httpadapter.Handlers{}, registrar{}), http.MethodGet, "/api/v1/shipments/abc", "sender@example.com", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetShipmentByTrackingNumber(t *testing.T) {
	var got queries.GetShipmentByTrackingNumberQuery
	e := newEcho(httpadapter.Handlers{
		GetShipmentByTracking: handlerFunc[queries.GetShipmentByTrackingNumberQuery, queries.ShipmentView](
			func(_ context.Context, q queries.GetShipmentByTrackingNumberQuery) (queries.ShipmentView, error) {
				got = q
				return queries.NewShipmentView(newShipment(t), nil), nil
			}),
	}, registrar{})

	rec := do(t, e, http.MethodGet, "/api/v1/shipments/tracking/csqwerty1234", "stranger@example.com", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "CSQWERTY1234", got.TrackingNumber().String())
	assert.Equal(t, []string{}, decode[httpadapter.Shipment](t, rec).AllowedTransitions)
}

func TestUpdateShipmentStatus(t *testing.T) {
	s := newShipment(t)
	var got commands.UpdateShipmentStatusCommand
	e := newEcho(httpadapter.Handlers{
		UpdateStatus: handlerFunc[commands.UpdateShipmentStatusCommand, *shipment.Shipment](
			func(_ context.Context, cmd commands.UpdateShipmentStatusCommand) (*shipment.Shipment, error) {
				got = cmd
				require.NoError(t, s.TransitionTo(cmd.Target(), cmd.Principal().Email(), createdAt.Add(time.Hour)))
				return s, nil
			}),
	}, registrar{})

	rec := do(t, e, http.MethodPost, "/api/v1/shipments/"+s.ID().String()+"/status", "receiver@example.com",
		map[string]string{"status": "in_transit"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, shipment.InTransit, got.Target())
	assert.True(t, got.ShipmentID().IsEqual(s.ID()))

	body := decode[httpadapter.Shipment](t, rec)
	assert.Equal(t, "In Transit", body.Status)
	assert.Len(t, body.StatusHistory, 2)
	assert.Equal(t, []string{"Delivered", "Returned", "Cancelled"}, body.AllowedTransitions)

	rec = do(t, e, http.MethodPost, "/api/v1/shipments/"+s.ID().String()+"/status", "receiver@example.com",
		map[string]string{"status": "Lost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelShipment(t *testing.T) {
	id := kernel.NewUUID()
	called := false
	e := newEcho(httpadapter.Handlers{
		CancelShipment: executorFunc[commands.CancelShipmentCommand](func(_ context.Context, cmd commands.CancelShipmentCommand) error {
			called = cmd.ShipmentID().IsEqual(id)
			return nil
		}),
	}, registrar{})

	rec := do(t, e, http.MethodDelete, "/api/v1/shipments/"+id.String(), "sender@example.com", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called)
}

func TestBulkImport_RawCSV(t *testing.T) {
	var content string
	e := newEcho(httpadapter.Handlers{
		BulkImport: handlerFunc[commands.BulkImportShipmentsCommand, commands.BulkImportResult](
			func(_ context.Context, cmd commands.BulkImportShipmentsCommand) (commands.BulkImportResult, error) {
				content = string(cmd.Content())
				return commands.BulkImportResult{SuccessCount: 1, FailedCount: 1, Errors: []string{"row 2: weight"}}, nil
			}),
	}, registrar{})

	csv := "receiver,weight,packageSize,deliveryAddress\nreceiver@example.com,900,Small,7 Lake Road\n"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shipments/bulk", strings.NewReader(csv))
	req.Header.Set(echo.HeaderContentType, "text/csv")
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, "sender@example.com", ""))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, csv, content)
	body := decode[httpadapter.BulkImportResponse](t, rec)
	assert.Equal(t, 1, body.SuccessCount)
	assert.Equal(t, 1, body.FailedCount)
	assert.Equal(t, []string{"row 2: weight"}, body.Errors)
	assert.Equal(t, []string{}, body.TrackingNumbers)
}

func TestBulkImport_SizeLimit(t *testing.T) {
	row := "receiver@example.com,fragile glass vase,900,Small,7 Lake Road\n"
	header := "receiver,description,weight,packageSize,deliveryAddress\n"

	csvOf := func(size int) string {
		var b strings.Builder
		b.WriteString(header)
		for b.Len()+len(row) <= size {
			b.WriteString(row)
		}
		b.WriteString(strings.Repeat("x", size-b.Len()))
		return b.String()
	}

	newBulkEcho := func(calls *int) *echo.Echo {
		return newEcho(httpadapter.Handlers{
			BulkImport: handlerFunc[commands.BulkImportShipmentsCommand, commands.BulkImportResult](
				func(_ context.Context, cmd commands.BulkImportShipmentsCommand) (commands.BulkImportResult, error) {
					*calls++
					return commands.BulkImportResult{}, nil
				}),
		}, registrar{})
	}

	post := func(t *testing.T, e *echo.Echo, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/shipments/bulk", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, "sender@example.com", ""))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("raw body at the limit is accepted whole", func(t *testing.T) {
		calls := 0
		rec := post(t, newBulkEcho(&calls), bytes.NewBufferString(csvOf(httpadapter.MaxBulkBytes)), "text/csv")

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, 1, calls)
	})

	t.Run("raw body over the limit is rejected, not truncated", func(t *testing.T) {
		calls := 0
		rec := post(t, newBulkEcho(&calls), bytes.NewBufferString(csvOf(httpadapter.MaxBulkBytes+64)), "text/csv")

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())
		assert.Zero(t, calls)
	})

	t.Run("multipart file over the limit is rejected", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("file", "shipments.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(csvOf(httpadapter.MaxBulkBytes + 1)))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		calls := 0
		rec := post(t, newBulkEcho(&calls), &buf, w.FormDataContentType())

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())
		assert.Zero(t, calls)
	})
}

func TestBulkImport_EmptyBody(t *testing.T) {
	rec := do(t, newEcho(httpadapter.Handlers{}, registrar{}), http.MethodPost, "/api/v1/shipments/bulk", "sender@example.com", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddComment(t *testing.T) {
	s := newShipment(t)
	e := newEcho(httpadapter.Handlers{
		AddComment: handlerFunc[commands.AddCommentCommand, *shipment.Comment](
			func(_ context.Context, cmd commands.AddCommentCommand) (*shipment.Comment, error) {
				p := cmd.Principal()
				return shipment.NewComment(cmd.ShipmentID(), cmd.Text(), p.Email(), p.DisplayName(), createdAt)
			}),
	}, registrar{})

	rec := do(t, e, http.MethodPost, "/api/v1/shipments/"+s.ID().String()+"/comments", "receiver@example.com",
		map[string]string{"text": "Leave it with the neighbour"})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode[httpadapter.Comment](t, rec)
	assert.Equal(t, "Leave it with the neighbour", body.Text)
	assert.Equal(t, "receiver@example.com", body.AuthorEmail)
}

func TestSubmitFeedback_RatingOutOfRange(t *testing.T) {
	rec := do(t, newEcho(httpadapter.Handlers{}, registrar{}), http.MethodPost,
		"/api/v1/shipments/"+kernel.NewUUID().String()+"/feedback", "receiver@example.com",
		map[string]any{"rating": 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangeUserRole(t *testing.T) {
	var got commands.ChangeUserRoleCommand
	e := newEcho(httpadapter.Handlers{
		ChangeUserRole: handlerFunc[commands.ChangeUserRoleCommand, *identity.User](
			func(_ context.Context, cmd commands.ChangeUserRoleCommand) (*identity.User, error) {
				got = cmd
				return identity.RestoreUser(cmd.Target(), "", cmd.Role(), createdAt)
			}),
	}, registrar{roles: map[string]identity.Role{adminEmail.String(): identity.RoleAdmin}})

	rec := do(t, e, http.MethodPut, "/api/v1/users/agent@example.com/role", adminEmail.String(),
		map[string]string{"role": "agent"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, got.Principal().IsAdmin(), "The stored role is used, not a token claim")
	assert.Equal(t, "agent@example.com", got.Target().String())
	assert.Equal(t, "agent", decode[httpadapter.User](t, rec).Role)

	rec = do(t, e, http.MethodPut, "/api/v1/users/agent@example.com/role", adminEmail.String(),
		map[string]string{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddressBook(t *testing.T) {
	entryID := kernel.NewUUID()
	var saved commands.SaveAddressBookEntryCommand
	var deleted commands.DeleteAddressBookEntryCommand

	e := newEcho(httpadapter.Handlers{
		SaveAddressBookEntry: handlerFunc[commands.SaveAddressBookEntryCommand, *addressbook.Entry](
			func(_ context.Context, cmd commands.SaveAddressBookEntryCommand) (*addressbook.Entry, error) {
				saved = cmd
				in := cmd.Input()
				return addressbook.NewEntry(cmd.Principal().Email(), in.Name, kernel.MustEmail(in.Email), in.Address, createdAt)
			}),
		DeleteAddressBookEntry: executorFunc[commands.DeleteAddressBookEntryCommand](
			func(_ context.Context, cmd commands.DeleteAddressBookEntryCommand) error {
				deleted = cmd
				return errs.NewObjectNotFoundError("entry", cmd.EntryID())
			}),
	}, registrar{})

	entry := map[string]string{"name": "Rita", "email": "rita@example.com", "address": "9 Hill Street"}

	rec := do(t, e, http.MethodPost, "/api/v1/address-book", "sender@example.com", entry)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Nil(t, saved.EntryID())
	assert.Equal(t, "Rita", decode[httpadapter.AddressBookEntry](t, rec).Name)

	rec = do(t, e, http.MethodPut, "/api/v1/address-book/"+entryID.String(), "sender@example.com", entry)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, saved.EntryID())
	assert.True(t, saved.EntryID().IsEqual(entryID))

	rec = do(t, e, http.MethodDelete, "/api/v1/address-book/"+entryID.String(), "sender@example.com", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, deleted.EntryID().IsEqual(entryID))
}
