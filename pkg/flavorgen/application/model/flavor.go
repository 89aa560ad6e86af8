package model

type FlavorID = string

type ComponentID = string

type Flavor struct {
	ID          FlavorID
	Description string
	Components  []ComponentID
}
