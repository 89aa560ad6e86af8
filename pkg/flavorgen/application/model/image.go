package model

type Image struct {
	Registry      string
	Owner         string
	Name          string
	Version       string
	DefaultBranch string
}
