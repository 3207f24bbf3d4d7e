package services

import (
	"fmt"
	"time"

	"github.com/Syed-Zahaab-Hussain/e-ticketing/core"
)

// Fixed demo accounts, one per role, materialized the first time the store
// is used so the dashboards can be exercised without a registration flow.
type demoAccount struct {
	id        string
	email     string
	firstName string
	lastName  string
	phone     string
	role      core.Role
	password  string
}

var demoAccounts = []demoAccount{
	{
		id:        "admin-1",
		email:     "admin@e-ticket.com",
		firstName: "Admin",
		lastName:  "User",
		phone:     "+1234567890",
		role:      core.RoleAdmin,
		password:  "admin123",
	},
	{
		id:        "operator-1",
		email:     "operator@e-ticket.com",
		firstName: "Bus",
		lastName:  "Operator",
		phone:     "+1234567891",
		role:      core.RoleBusOperator,
		password:  "operator123",
	},
	{
		id:        "passenger-1",
		email:     "passenger@e-ticket.com",
		firstName: "John",
		lastName:  "Passenger",
		phone:     "+1234567892",
		role:      core.RolePassenger,
		password:  "passenger123",
	},
}

// ensureBootstrap writes the demo accounts and their credentials if, and
// only if, the user collection has never been populated. Caller holds s.mu.
func (s *Identity) ensureBootstrap() error {
	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	now := time.Now().UTC()
	secrets := make(map[string]string, len(demoAccounts))
	for _, account := range demoAccounts {
		phone := account.phone
		users = append(users, core.User{
			ID:        account.id,
			Email:     account.email,
			FirstName: account.firstName,
			LastName:  account.lastName,
			Phone:     &phone,
			Role:      account.role,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})

		secret, err := s.passwords.Hash(account.password)
		if err != nil {
			return fmt.Errorf("hash demo credential: %w", err)
		}
		secrets[account.email] = secret
	}

	if err := s.saveUsers(users); err != nil {
		return err
	}
	return s.saveSecrets(secrets)
}
