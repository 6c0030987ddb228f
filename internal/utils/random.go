package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/workhive/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"Ana", "Bruno", "Carla", "Diego", "Elena", "Felipe", "Gabriela", "Hugo",
	"Isabela", "João", "Karen", "Lucas", "Mariana", "Nicolas", "Olivia",
	"Pedro", "Rafaela", "Samuel", "Tainá", "Vitor",
}

var lastNames = []string{
	"Silva", "Santos", "Oliveira", "Souza", "Lima", "Pereira", "Costa",
	"Almeida", "Ferreira", "Rodrigues", "Gomes", "Martins", "Barbosa",
	"Ribeiro", "Carvalho", "Rocha", "Dias", "Nunes", "Moreira", "Teixeira",
}

func GenerateRandomFullName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := strings.Join(parts, ".")

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var companyWords = []string{
	"Atlas", "Vertex", "Nimbus", "Forge", "Harbor", "Summit", "Prisma",
	"Orbit", "Compass", "Beacon",
}

var companySuffixes = []string{"Construções", "Serviços", "Logística", "Engenharia", "Soluções"}

func GenerateRandomCompanyName() string {
	return companyWords[rand.Intn(len(companyWords))] + " " + companySuffixes[rand.Intn(len(companySuffixes))]
}

func GenerateRandomUser(role domain.Role, password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	if role == domain.RoleCompany {
		fullName = GenerateRandomCompanyName()
	}
	username := GenerateUsernameFromFullName(fullName)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         fullName,
		Username:     username,
		Email:        username + "@" + emailDomainName,
		PasswordHash: string(passwordHash),
		Role:         role,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}

var positions = []string{
	"Electrician", "Plumber", "Painter", "Carpenter", "Mason",
	"Welder", "Driver", "Site Supervisor", "Landscaper", "Cleaner",
}

func GenerateRandomPosition() string {
	return positions[rand.Intn(len(positions))]
}

var plateLetters = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

func GenerateRandomPlate() string {
	plate := make([]rune, 7)
	for i := 0; i < 3; i++ {
		plate[i] = plateLetters[rand.Intn(len(plateLetters))]
	}
	for i := 3; i < 7; i++ {
		plate[i] = rune(digits[rand.Intn(len(digits))])
	}
	return string(plate)
}
