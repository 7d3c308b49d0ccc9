package handlers

import (
	adminController "artistsite/internal/controllers/admin"
	"artistsite/internal/models"
	"artistsite/internal/services"
	"artistsite/internal/types"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (h *SiteHandler) createShow(c *fiber.Ctx) error {
	return h.saveShow(c, 0)
}

func (h *SiteHandler) updateShow(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return h.renderPanelError(c, err)
	}
	return h.saveShow(c, id)
}

// saveShow closes the form on success. On failure the form stays open with
// what was submitted and the error in its message slot.
func (h *SiteHandler) saveShow(c *fiber.Ctx, id int64) error {
	input := services.ShowInput{
		Date:      c.FormValue("date"),
		Venue:     c.FormValue("venue"),
		City:      c.FormValue("city"),
		EventName: c.FormValue("event_name"),
		TicketURL: c.FormValue("ticket_url"),
	}

	if _, err := h.adminController.SaveShow(c.UserContext(), id, input); err != nil {
		state := formState(adminController.EntityShow, id)
		return h.render(c, types.AdminSignal, statusFor(err), nil, func(panel *adminController.Panel) {
			panel.State = state
			panel.ReleaseForm = nil
			panel.ShowForm = &adminController.ShowForm{
				State: state,
				Input: input,
				Error: types.UserMessage(err),
			}
		})
	}

	return h.backToPanel(c)
}

func (h *SiteHandler) deleteShow(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return h.renderPanelError(c, err)
	}

	if err := h.adminController.DeleteShow(c.UserContext(), id); err != nil {
		return h.renderPanelError(c, err)
	}

	return h.backToPanel(c)
}

func (h *SiteHandler) createRelease(c *fiber.Ctx) error {
	return h.saveRelease(c, 0)
}

func (h *SiteHandler) updateRelease(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return h.renderPanelError(c, err)
	}
	return h.saveRelease(c, id)
}

// saveRelease also handles the form's add-link and remove-link buttons,
// which re-render the form without storing anything.
func (h *SiteHandler) saveRelease(c *fiber.Ctx, id int64) error {
	input := releaseInputFromForm(c)
	state := formState(adminController.EntityRelease, id)

	if c.FormValue("add_link") != "" {
		input.Links = append(input.Links, services.LinkInput{Platform: models.PlatformSpotify})
		return h.renderReleaseForm(c, state, input, nil)
	}

	if raw := c.FormValue("remove_link"); raw != "" {
		index, err := strconv.Atoi(raw)
		if err == nil && index >= 0 && index < len(input.Links) {
			input.Links = append(input.Links[:index], input.Links[index+1:]...)
		}
		return h.renderReleaseForm(c, state, input, nil)
	}

	release, err := h.adminController.SaveRelease(c.UserContext(), id, input)
	if err != nil {
		// The scalar write may have landed; keep editing the stored release.
		if release != nil {
			state = adminController.OpenEdit(adminController.EntityRelease, release.ID)
		}
		return h.renderReleaseForm(c, state, input, err)
	}

	return h.backToPanel(c)
}

func (h *SiteHandler) deleteRelease(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return h.renderPanelError(c, err)
	}

	if err := h.adminController.DeleteRelease(c.UserContext(), id); err != nil {
		return h.renderPanelError(c, err)
	}

	return h.backToPanel(c)
}

func (h *SiteHandler) export(c *fiber.Ctx) error {
	file, err := h.adminController.Export(c.UserContext())
	if err != nil {
		return h.renderPanelError(c, err)
	}

	c.Attachment(ExportFileName)
	return c.JSON(file)
}

func (h *SiteHandler) renderReleaseForm(
	c *fiber.Ctx,
	state adminController.PanelState,
	input services.ReleaseInput,
	err error,
) error {
	status := fiber.StatusOK
	if err != nil {
		status = statusFor(err)
	}

	return h.render(c, types.AdminSignal, status, nil, func(panel *adminController.Panel) {
		panel.State = state
		panel.ShowForm = nil
		panel.ReleaseForm = &adminController.ReleaseForm{
			State:     state,
			Input:     input,
			Platforms: models.Platforms,
			Error:     types.UserMessage(err),
		}
	})
}

func (h *SiteHandler) renderPanelError(c *fiber.Ctx, err error) error {
	return h.render(c, types.AdminSignal, statusFor(err), nil, func(panel *adminController.Panel) {
		panel.Error = types.UserMessage(err)
	})
}

func formState(entity adminController.EntityType, id int64) adminController.PanelState {
	if id == 0 {
		return adminController.OpenAdd(entity)
	}
	return adminController.OpenEdit(entity, id)
}

// releaseInputFromForm reads the repeated link rows in submission order.
// A row without a parsable id is a new link.
func releaseInputFromForm(c *fiber.Ctx) services.ReleaseInput {
	args := c.Request().PostArgs()
	ids := args.PeekMulti("link_id")
	platforms := args.PeekMulti("link_platform")
	urls := args.PeekMulti("link_url")

	input := services.ReleaseInput{
		Title:    c.FormValue("title"),
		ImageURL: c.FormValue("image_url"),
		Links:    make([]services.LinkInput, 0, len(urls)),
	}

	for i, url := range urls {
		link := services.LinkInput{URL: strings.TrimSpace(string(url))}
		if i < len(ids) {
			link.ID, _ = strconv.ParseInt(string(ids[i]), 10, 64)
		}
		if i < len(platforms) {
			link.Platform = models.Platform(platforms[i])
		}
		input.Links = append(input.Links, link)
	}

	return input
}
