package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoSociety-Admin/GoSociety-Admin/internal/config"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/db/models"
	"github.com/GoSociety-Admin/GoSociety-Admin/internal/uniuri"
)

// seed bootstraps roles, actions, menus, grants and the first admin account
// on an empty database. A non-empty role table means an initialized system
// and seeding is skipped entirely.
func seed(_ *config.Config, db *gorm.DB) {
	var count int64
	db.Model(&models.Role{}).Count(&count)
	if count > 0 {
		return
	}

	log.Info().Msg("empty database, seeding initial access-control data")

	adminRole := models.Role{Name: "Administrator", Description: "Full access to every screen and action", IsSystem: true}
	residentRole := models.Role{Name: "Resident", Description: "Read-only access to own society data"}

	actions := []models.Action{
		{Name: "View", Description: "View a screen and its data"},
		{Name: "Add", Description: "Create records on a screen"},
		{Name: "Edit", Description: "Edit records on a screen"},
		{Name: "Delete", Description: "Delete records on a screen"},
		{Name: "GeneratePaymentPlan", Description: "Generate receivables from a rate plan"},
		{Name: "ViewPaymentPlan", Description: "Preview a rate plan's payment plan"},
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, role := range []*models.Role{&adminRole, &residentRole} {
			if err := tx.Create(role).Error; err != nil {
				return err
			}
		}

		for i := range actions {
			if err := tx.Create(&actions[i]).Error; err != nil {
				return err
			}
		}

		dashboard := models.Menu{Name: "Dashboard", URL: "/dashboard", Icon: "fa-gauge", Position: 1}
		plots := models.Menu{Name: "Plots", URL: "/plots", Icon: "fa-building", Position: 2}
		expenses := models.Menu{Name: "Expenses", URL: "/expenses", Icon: "fa-money-bill", Position: 3}
		receivables := models.Menu{Name: "Receivables", URL: "/receivables", Icon: "fa-file-invoice", Position: 4}
		ratePlans := models.Menu{Name: "Rate Plans", URL: "/rate-plans", Icon: "fa-percent", Position: 5}
		managementPanel := models.Menu{Name: "Management Panel", URL: "/management-panel", Icon: "fa-sliders", Position: 6}
		systemManagement := models.Menu{Name: "System Management", URL: "/system-management", Icon: "fa-gears", Position: 7}

		topLevel := []*models.Menu{
			&dashboard, &plots, &expenses, &receivables,
			&ratePlans, &managementPanel, &systemManagement,
		}
		for _, menu := range topLevel {
			if err := tx.Create(menu).Error; err != nil {
				return err
			}
		}

		subMenus := []*models.Menu{
			{ParentID: managementPanel.ID, Name: "Floors", URL: "/management-panel/floors", Position: 1},
			{ParentID: managementPanel.ID, Name: "Categories", URL: "/management-panel/categories", Position: 2},
			{ParentID: systemManagement.ID, Name: "Users", URL: "/system-management/users", Position: 1},
			{ParentID: systemManagement.ID, Name: "Roles & Permissions", URL: "/system-management/roles", Position: 2},
			{ParentID: systemManagement.ID, Name: "Menus", URL: "/system-management/menus", Position: 3},
		}
		for _, menu := range subMenus {
			if err := tx.Create(menu).Error; err != nil {
				return err
			}
		}

		allMenus := append(topLevel, subMenus...)

		// Administrator: every action at every menu.
		for _, menu := range allMenus {
			for _, action := range actions {
				grant := models.RoleMenuAction{RoleID: adminRole.ID, MenuID: menu.ID, ActionID: action.ID}
				if err := tx.Create(&grant).Error; err != nil {
					return err
				}
			}
		}

		// Resident: view-only on the dashboard and own dues.
		viewID := actions[0].ID
		for _, menu := range []*models.Menu{&dashboard, &receivables} {
			grant := models.RoleMenuAction{RoleID: residentRole.ID, MenuID: menu.ID, ActionID: viewID}
			if err := tx.Create(&grant).Error; err != nil {
				return err
			}
		}

		password := uniuri.New()
		admin := models.User{
			Username: "admin",
			Email:    "admin@localhost",
			Password: models.HashPassword(password),
			Active:   true,
			RoleID:   adminRole.ID,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		// logged exactly once; change it after first login
		log.Info().Msgf("created bootstrap user 'admin' with password: %s", password)

		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}
}
