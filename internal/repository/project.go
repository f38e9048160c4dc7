package repository

import (
	"context"

	"github.com/vachan-cat/cattrans/internal/model"
)

// ProjectRepository persists the Project aggregate and its ProjectUser
// memberships.
type ProjectRepository interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id int) (*model.Project, error)
	List(ctx context.Context) ([]*model.Project, error)
	Update(ctx context.Context, p *model.Project) error
	AddUser(ctx context.Context, pu *model.ProjectUser) error
	ListUsers(ctx context.Context, projectID int) ([]*model.ProjectUser, error)
}
