package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"
)

var apiBase = "http://localhost:8080/api"

var designTypes = []string{"holographic", "gemstone", "galaxy", "floral"}

type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserID   string `json:"userId"`

	client *http.Client
}

type Design struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Public bool   `json:"public"`
}

type signupResponse struct {
	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

type designResponse struct {
	Design Design `json:"design"`
}

func post(client *http.Client, path string, payload any, out any) error {
	body, _ := json.Marshal(payload)

	resp, err := client.Post(apiBase+path, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s failed (%d): %s", path, resp.StatusCode, string(bodyBytes))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	return nil
}

// signup registers a user on a fresh cookie jar so that every user keeps
// their own session.
func signup(name, email, password string) (*User, error) {
	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar, Timeout: 10 * time.Second}

	var result signupResponse
	err := post(client, "/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}

	return &User{
		Name:     result.User.Name,
		Email:    result.User.Email,
		Password: password,
		UserID:   result.User.ID,
		client:   client,
	}, nil
}

func createDesign(user *User, name string, public bool) (*Design, error) {
	fingers := make(map[string]string, 5)
	for i := 0; i < 5; i++ {
		fingers[fmt.Sprint(i)] = designTypes[rand.Intn(len(designTypes))]
	}

	var result designResponse
	err := post(user.client, "/designs", map[string]any{
		"name":          name,
		"type":          designTypes[rand.Intn(len(designTypes))],
		"fingerDesigns": fingers,
		"public":        public,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result.Design, nil
}

func likeDesign(user *User, designID string) error {
	return post(user.client, "/designs/"+designID+"/like", nil, nil)
}

func generateSuffix() string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	random := make([]byte, 4)
	for i := range random {
		random[i] = letters[rand.Intn(len(letters))]
	}
	return fmt.Sprintf("%d_%s", time.Now().Unix(), string(random))
}

func main() {
	if base := os.Getenv("API_BASE"); base != "" {
		apiBase = base
	}

	const userCount = 5
	const designsPerUser = 3
	password := "testpassword123"
	suffix := generateSuffix()

	fmt.Printf("Seeding %s...\n\n", apiBase)

	var users []*User
	fmt.Printf("Registering %d users...\n", userCount)
	for i := 1; i <= userCount; i++ {
		name := fmt.Sprintf("Tester %d", i)
		email := fmt.Sprintf("test_%d_%s@example.com", i, suffix)
		user, err := signup(name, email, password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to register user %d: %v\n", i, err)
			os.Exit(1)
		}
		users = append(users, user)
		fmt.Printf("  ✓ User %d: %s\n", i, user.Email)
	}

	var designs []*Design
	fmt.Println("\nCreating designs...")
	for i, user := range users {
		for j := 1; j <= designsPerUser; j++ {
			// Every third design stays private to its owner.
			public := j%3 != 0
			design, err := createDesign(user, fmt.Sprintf("%s look %d", user.Name, j), public)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to create design for user %d: %v\n", i+1, err)
				os.Exit(1)
			}
			if public {
				designs = append(designs, design)
			}
		}
	}
	fmt.Printf("  ✓ %d designs created (%d public)\n", userCount*designsPerUser, len(designs))

	fmt.Println("\nLiking public designs...")
	likes := 0
	for _, user := range users {
		for _, design := range designs {
			if rand.Intn(2) == 0 {
				continue
			}
			if err := likeDesign(user, design.ID); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to like design %s: %v\n", design.ID, err)
				os.Exit(1)
			}
			likes++
		}
	}
	fmt.Printf("  ✓ %d likes recorded\n", likes)

	fmt.Println("\n" + "============================================================")
	fmt.Println("SEED COMPLETE")
	fmt.Println("============================================================")
	fmt.Println("\nSign in at http://localhost:3000/signin with any user:")
	for i, user := range users {
		fmt.Printf("  User %d: %s / %s\n", i+1, user.Email, user.Password)
	}

	output := map[string]any{
		"users":   users,
		"designs": designs,
	}

	fmt.Println("\n" + "============================================================")
	fmt.Println("JSON OUTPUT (for scripts):")
	fmt.Println("============================================================")
	jsonOutput, _ := json.MarshalIndent(output, "", "  ")
	fmt.Println(string(jsonOutput))
}
