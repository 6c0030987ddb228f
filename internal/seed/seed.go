package seed

import (
	"log/slog"
	"math/rand"

	"github.com/workhive/backend/internal/domain"
	"github.com/workhive/backend/internal/repository"
	"github.com/workhive/backend/internal/utils"
)

const emailDomain = "example.com"

// SeedSampleData populates a development database with a small marketplace:
// companies with linked employees and fleets, clients, and a few projects
// with staffed rosters. Employment links go through the invitation flow so
// the seeded data satisfies the same invariants as production data.
func SeedSampleData(repo *repository.Repository, password string) {
	companies := createUsers(repo, domain.RoleCompany, 3, password)
	professionals := createUsers(repo, domain.RoleProfessional, 12, password)
	clients := createUsers(repo, domain.RoleClient, 4, password)

	if len(companies) == 0 || len(professionals) == 0 {
		slog.Error("not enough seeded users to continue")
		return
	}

	// link professionals to companies through accepted invitations
	employees := make(map[int64]*domain.Employee)
	for i, professional := range professionals {
		company := companies[i%len(companies)]

		invitation := &domain.EmployeeInvitation{
			ProfessionalID: professional.ID,
			CompanyID:      company.ID,
			Position:       utils.GenerateRandomPosition(),
		}
		if _, err := repo.CreateInvitation(invitation, company.Name+" invited you to join as "+invitation.Position); err != nil {
			slog.Error("unable to create invitation", slog.String("error", err.Error()))
			continue
		}

		_, employee, err := repo.RespondInvitation(invitation.ID, true, professional.Name+" accepted your invitation")
		if err != nil {
			slog.Error("unable to accept invitation", slog.String("error", err.Error()))
			continue
		}
		employees[company.ID] = employee
	}

	// a project per company, each with a client and one assigned employee
	for i, company := range companies {
		client := clients[i%len(clients)]

		project := &domain.Project{
			Title:       company.Name + " project " + utils.GenerateRandomPassword(4),
			Description: "Seeded sample project",
			Status:      domain.ProjectNotStarted,
			CreatorID:   company.ID,
			CreatorRole: domain.RoleCompany,
			CompanyID:   &company.ID,
			ClientID:    &client.ID,
		}
		if err := repo.CreateProject(project); err != nil {
			slog.Error("unable to create project", slog.String("error", err.Error()))
			continue
		}

		employee, ok := employees[company.ID]
		if !ok {
			continue
		}
		if _, _, err := repo.AssignEmployee(project.ID, employee.ID, utils.GenerateRandomPosition()); err != nil {
			slog.Error("unable to assign employee", slog.String("error", err.Error()))
		}
	}

	// a small fleet per company
	for _, company := range companies {
		for i := 0; i < rand.Intn(3)+1; i++ {
			vehicle := &domain.Vehicle{
				CompanyID: company.ID,
				Plate:     utils.GenerateRandomPlate(),
				Model:     "Utility Van",
				Year:      int32(2015 + rand.Intn(10)),
				Status:    domain.VehicleAvailable,
			}
			if err := repo.CreateVehicle(vehicle); err != nil {
				slog.Error("unable to create vehicle", slog.String("error", err.Error()))
			}
		}
	}

	slog.Info("sample data seeded",
		slog.Int("companies", len(companies)),
		slog.Int("professionals", len(professionals)),
		slog.Int("clients", len(clients)),
	)
}

func createUsers(repo *repository.Repository, role domain.Role, n int, password string) []*domain.User {
	users := make([]*domain.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(role, password, emailDomain)
		if err != nil {
			slog.Error("unable to generate user", slog.String("error", err.Error()))
			continue
		}
		if err := repo.CreateUser(user); err != nil {
			slog.Error("unable to insert user", slog.String("error", err.Error()))
			continue
		}
		users = append(users, user)
	}
	return users
}
