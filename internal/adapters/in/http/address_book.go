package http

import (
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// ListAddressBook handles GET /api/v1/address-book.
func (s *Server) ListAddressBook(c echo.Context) error {
	query, err := queries.NewListAddressBookQuery(principalOf(c))
	if err != nil {
		return badRequest(c, "Invalid query", err)
	}

	list, err := s.h.ListAddressBook.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	out := make([]AddressBookEntry, 0, len(list))
	for _, v := range list {
		out = append(out, toAddressBookEntry(v))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateAddressBookEntry handles POST /api/v1/address-book.
func (s *Server) CreateAddressBookEntry(c echo.Context) error {
	return s.saveAddressBookEntry(c, nil, http.StatusCreated)
}

// UpdateAddressBookEntry handles PUT /api/v1/address-book/:id.
func (s *Server) UpdateAddressBookEntry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid entry id", err)
	}
	return s.saveAddressBookEntry(c, &id, http.StatusOK)
}

func (s *Server) saveAddressBookEntry(c echo.Context, id *kernel.UUID, status int) error {
	var req AddressBookEntryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	cmd, err := commands.NewSaveAddressBookEntryCommand(principalOf(c), id, services.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return badRequest(c, "Invalid entry", err)
	}

	entry, err := s.h.SaveAddressBookEntry.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(status, toAddressBookEntry(queries.NewAddressBookEntryView(entry)))
}

// DeleteAddressBookEntry handles DELETE /api/v1/address-book/:id.
func (s *Server) DeleteAddressBookEntry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "Invalid entry id", err)
	}
	cmd, err := commands.NewDeleteAddressBookEntryCommand(principalOf(c), id)
	if err != nil {
		return badRequest(c, "Invalid entry", err)
	}

	if err = s.h.DeleteAddressBookEntry.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
