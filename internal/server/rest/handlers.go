package rest

import (
	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
	"github.com/dmitrijs2005/hoverboard/internal/server/services"
	"github.com/gofiber/fiber/v3"
)

var errBadBody = fiber.NewError(fiber.StatusUnprocessableEntity, "invalid request body")

func (s *Server) root(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "HoverBoard API dengan Authentication Ready! 🚀"})
}

func (s *Server) register(c fiber.Ctx) error {
	var in registerRequest
	if err := c.Bind().Body(&in); err != nil {
		return errBadBody
	}

	res, err := s.users.Register(c.Context(), in.Email, in.Password, in.FullName)
	if err != nil {
		return err
	}

	s.logger.Info(c.Context(), "Registered", "user_id", res.User.ID)
	return c.JSON(newAuthResponse(res))
}

func (s *Server) login(c fiber.Ctx) error {
	var in loginRequest
	if err := c.Bind().Body(&in); err != nil {
		return errBadBody
	}

	res, err := s.users.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		return err
	}

	return c.JSON(newAuthResponse(res))
}

func (s *Server) selectUsername(c fiber.Ctx) error {
	var in usernameRequest
	if err := c.Bind().Body(&in); err != nil {
		return errBadBody
	}

	user, err := s.users.ClaimUsername(c.Context(), currentUser(c).ID, in.Username)
	if err != nil {
		return err
	}

	return c.JSON(usernameResponse{Message: "Username set successfully", User: user.Profile()})
}

func (s *Server) me(c fiber.Ctx) error {
	return c.JSON(currentUser(c).Profile())
}

func (s *Server) userProfile(c fiber.Ctx) error {
	user, err := s.users.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return rename(err, common.ErrorNotFound, fiber.StatusNotFound, "User not found")
	}
	return c.JSON(user.Profile())
}

func (s *Server) userProjects(c fiber.Ctx) error {
	list, err := s.projects.ListByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return rename(err, common.ErrorNotFound, fiber.StatusNotFound, "User not found")
	}
	return c.JSON(list)
}

func (s *Server) updateProfile(c fiber.Ctx) error {
	var upd models.UserUpdate
	if err := c.Bind().Body(&upd); err != nil {
		return errBadBody
	}

	user, err := s.users.UpdateProfile(c.Context(), currentUser(c).ID, upd)
	if err != nil {
		return err
	}
	return c.JSON(user.Profile())
}

func (s *Server) presign(c fiber.Ctx, kind string) error {
	if s.media == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Media storage is not configured")
	}

	ticket, err := s.media.PresignUpload(c.Context(), currentUser(c).ID, kind)
	if err != nil {
		return err
	}
	return c.JSON(ticket)
}

func (s *Server) avatarUpload(c fiber.Ctx) error {
	return s.presign(c, services.MediaAvatar)
}

func (s *Server) projectImageUpload(c fiber.Ctx) error {
	return s.presign(c, services.MediaProject)
}

func (s *Server) listProjects(c fiber.Ctx) error {
	list, err := s.projects.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (s *Server) getProject(c fiber.Ctx) error {
	p, err := s.projects.Get(c.Context(), c.Params("id"))
	if err != nil {
		return rename(err, common.ErrorNotFound, fiber.StatusNotFound, "Project not found")
	}
	return c.JSON(p)
}

func (s *Server) createProject(c fiber.Ctx) error {
	var in models.ProjectCreate
	if err := c.Bind().Body(&in); err != nil {
		return errBadBody
	}

	p, err := s.projects.Create(c.Context(), currentUser(c).ID, in)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (s *Server) updateProject(c fiber.Ctx) error {
	var upd models.ProjectUpdate
	if err := c.Bind().Body(&upd); err != nil {
		return errBadBody
	}

	p, err := s.projects.Update(c.Context(), currentUser(c).ID, c.Params("id"), upd)
	if err != nil {
		err = rename(err, common.ErrorNotFound, fiber.StatusNotFound, "Project not found")
		return rename(err, common.ErrorForbidden, fiber.StatusForbidden, "Not authorized to update this project")
	}
	return c.JSON(p)
}

func (s *Server) deleteProject(c fiber.Ctx) error {
	deleted, err := s.projects.Delete(c.Context(), currentUser(c).ID, c.Params("id"))
	if err != nil {
		err = rename(err, common.ErrorNotFound, fiber.StatusNotFound, "Project not found")
		return rename(err, common.ErrorForbidden, fiber.StatusForbidden, "Not authorized to delete this project")
	}
	return c.JSON(deleteResponse{Deleted: deleted})
}
