package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	apierrors "github.com/tinkeroneo/cook-go/internal/errors"
	"github.com/tinkeroneo/cook-go/internal/types"
)

// ListAllRecipeParts retrieves every parent→child edge in the space.
func ListAllRecipeParts(ctx context.Context, httpClient HTTPClient, baseURL, spaceID string) ([]types.RecipePart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateSpaceID(spaceID); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/spaces/%s/parts", baseURL, url.PathEscape(spaceID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("list recipe parts", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "list recipe parts")
	}
	var lr types.ListRecipePartsResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	return lr.Parts, nil
}

// AddRecipePart attaches child to parent at the given sort position.
// Self-loops are rejected before the request is made.
func AddRecipePart(ctx context.Context, httpClient HTTPClient, baseURL, spaceID, parentID, childID string, order int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateSpaceID(spaceID); err != nil {
		return err
	}
	if err := types.ValidatePart(parentID, childID); err != nil {
		return err
	}
	part := types.RecipePart{ParentID: parentID, ChildID: childID, SortOrder: order, SpaceID: spaceID}
	body, err := json.Marshal(part)
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/api/spaces/%s/parts", baseURL, url.PathEscape(spaceID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return apierrors.NewNetworkError("add recipe part", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return statusError(resp, "add recipe part")
	}
	return nil
}

// RemoveRecipePart detaches child from parent.
func RemoveRecipePart(ctx context.Context, httpClient HTTPClient, baseURL, spaceID, parentID, childID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateSpaceID(spaceID); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(parentID, "parentId"); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(childID, "childId"); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/api/spaces/%s/parts/%s/%s", baseURL, url.PathEscape(spaceID), url.PathEscape(parentID), url.PathEscape(childID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return apierrors.NewNetworkError("remove recipe part", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent {
		return statusError(resp, "remove recipe part")
	}
	return nil
}
