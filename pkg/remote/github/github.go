// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package github resolves version strings from GitHub releases, so a sync
// can follow a repository's latest published tag instead of an explicit
// argument. The tag text is taken verbatim apart from a stripped leading
// "v"; no version grammar is enforced.
package github

import (
	"context"
	"os"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ReleaseClient defines the interface for the GitHub API operations we need
type ReleaseClient interface {
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
	GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*github.RepositoryRelease, *github.Response, error)
}

// Resolver resolves version strings from GitHub releases
type Resolver struct {
	client ReleaseClient
}

// NewResolver creates a new resolver, authenticating with GITHUB_TOKEN when
// it is set
func NewResolver() *Resolver {
	client := github.NewClient(nil)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		client = client.WithAuthToken(token)
	}
	return &Resolver{client: &releaseClientWrapper{client: client}}
}

// NewResolverWithClient creates a resolver with a custom client, for tests
func NewResolverWithClient(client ReleaseClient) *Resolver {
	return &Resolver{client: client}
}

// releaseClientWrapper wraps the GitHub client to implement our interface
type releaseClientWrapper struct {
	client *github.Client
}

func (w *releaseClientWrapper) GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error) {
	return w.client.Repositories.GetLatestRelease(ctx, owner, repo)
}

func (w *releaseClientWrapper) GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*github.RepositoryRelease, *github.Response, error) {
	return w.client.Repositories.GetReleaseByTag(ctx, owner, repo, tag)
}

// LatestVersion returns the version string of the latest release of
// repository ("owner/name" form), with a leading "v" stripped from the tag
func (r *Resolver) LatestVersion(ctx context.Context, repository string) (string, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("repository", repository).Msg("resolving latest release")

	owner, name, err := splitRepository(repository)
	if err != nil {
		return "", err
	}

	release, _, err := r.client.GetLatestRelease(ctx, owner, name)
	if err != nil {
		return "", errors.Errorf("getting latest release of %s: %w", repository, err)
	}

	return versionFromTag(repository, release.GetTagName())
}

// VersionForTag returns the version string for an explicit release tag,
// verifying that the release exists
func (r *Resolver) VersionForTag(ctx context.Context, repository, tag string) (string, error) {
	owner, name, err := splitRepository(repository)
	if err != nil {
		return "", err
	}

	release, _, err := r.client.GetReleaseByTag(ctx, owner, name, tag)
	if err != nil {
		return "", errors.Errorf("getting release %s of %s: %w", tag, repository, err)
	}

	return versionFromTag(repository, release.GetTagName())
}

func splitRepository(repository string) (owner, name string, err error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "", "", errors.Errorf("invalid repository name: %s", repository)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

func versionFromTag(repository, tag string) (string, error) {
	version := strings.TrimPrefix(tag, "v")
	if version == "" {
		return "", errors.Errorf("release of %s has an empty tag", repository)
	}
	return version, nil
}
