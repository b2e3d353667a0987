package uiautomation

import (
	"context"
	"net/http"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

var (
	getElements                = endpoint("GetElements", http.MethodGet, "/elements/")
	createElement              = endpoint("CreateElement", http.MethodPost, "/elements/")
	getElementDetail           = endpoint("GetElementDetail", http.MethodGet, "/elements/{id}/")
	updateElement              = endpoint("UpdateElement", http.MethodPatch, "/elements/{id}/")
	deleteElement              = endpoint("DeleteElement", http.MethodDelete, "/elements/{id}/")
	validateElementLocator     = endpoint("ValidateElementLocator", http.MethodPost, "/elements/{id}/validate_locator/")
	getElementUsages           = endpoint("GetElementUsages", http.MethodGet, "/elements/{id}/usages/")
	getElementTree             = endpoint("GetElementTree", http.MethodGet, "/elements/tree/")
	addBackupLocator           = endpoint("AddBackupLocator", http.MethodPost, "/elements/{id}/add_backup_locator/")
	generateElementSuggestions = endpoint("GenerateElementSuggestions", http.MethodPost, "/elements/{id}/generate_suggestions/")

	getElementGroups      = endpoint("GetElementGroups", http.MethodGet, "/element-groups/")
	createElementGroup    = endpoint("CreateElementGroup", http.MethodPost, "/element-groups/")
	getElementGroupDetail = endpoint("GetElementGroupDetail", http.MethodGet, "/element-groups/{id}/")
	updateElementGroup    = endpoint("UpdateElementGroup", http.MethodPatch, "/element-groups/{id}/")
	deleteElementGroup    = endpoint("DeleteElementGroup", http.MethodDelete, "/element-groups/{id}/")
	getElementGroupTree   = endpoint("GetElementGroupTree", http.MethodGet, "/element-groups/tree/")

	getPageObjects         = endpoint("GetPageObjects", http.MethodGet, "/page-objects/")
	createPageObject       = endpoint("CreatePageObject", http.MethodPost, "/page-objects/")
	getPageObjectDetail    = endpoint("GetPageObjectDetail", http.MethodGet, "/page-objects/{id}/")
	updatePageObject       = endpoint("UpdatePageObject", http.MethodPatch, "/page-objects/{id}/")
	deletePageObject       = endpoint("DeletePageObject", http.MethodDelete, "/page-objects/{id}/")
	generatePageObjectCode = endpoint("GeneratePageObjectCode", http.MethodPost, "/page-objects/{id}/generate_code/")
	addElementToPageObject = endpoint("AddElementToPageObject", http.MethodPost, "/page-objects/{id}/add_element/")
	getPageObjectElements  = endpoint("GetPageObjectElements", http.MethodGet, "/page-objects/{id}/elements/")

	getPageObjectElementDetails = endpoint("GetPageObjectElementDetails", http.MethodGet, "/page-object-elements/")
	createPageObjectElement     = endpoint("CreatePageObjectElement", http.MethodPost, "/page-object-elements/")
	updatePageObjectElement     = endpoint("UpdatePageObjectElement", http.MethodPatch, "/page-object-elements/{id}/")
	deletePageObjectElement     = endpoint("DeletePageObjectElement", http.MethodDelete, "/page-object-elements/{id}/")
)

// GetElements lists elements.
func (c *Client) GetElements(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getElements.Call(ctx, c.d, "", params, nil)
}

// CreateElement creates an element.
func (c *Client) CreateElement(ctx context.Context, data any) (*apiclient.Response, error) {
	return createElement.Call(ctx, c.d, "", nil, data)
}

// GetElementDetail fetches one element.
func (c *Client) GetElementDetail(ctx context.Context, elementID int64) (*apiclient.Response, error) {
	return getElementDetail.Call(ctx, c.d, apiclient.FormatID(elementID), nil, nil)
}

// UpdateElement updates the element. Only the fields in data change.
func (c *Client) UpdateElement(ctx context.Context, elementID int64, data any) (*apiclient.Response, error) {
	return updateElement.Call(ctx, c.d, apiclient.FormatID(elementID), nil, data)
}

// DeleteElement removes an element.
func (c *Client) DeleteElement(ctx context.Context, elementID int64) (*apiclient.Response, error) {
	return deleteElement.Call(ctx, c.d, apiclient.FormatID(elementID), nil, nil)
}

// ValidateElementLocator checks the element's primary locator against its page.
func (c *Client) ValidateElementLocator(ctx context.Context, elementID int64) (*apiclient.Response, error) {
	return validateElementLocator.Call(ctx, c.d, apiclient.FormatID(elementID), nil, nil)
}

// GetElementUsages lists the scripts and page objects that reference the element.
func (c *Client) GetElementUsages(ctx context.Context, elementID int64) (*apiclient.Response, error) {
	return getElementUsages.Call(ctx, c.d, apiclient.FormatID(elementID), nil, nil)
}

// GetElementTree returns elements nested under their groups.
func (c *Client) GetElementTree(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getElementTree.Call(ctx, c.d, "", params, nil)
}

// AddBackupLocator attaches a fallback locator used when the primary one fails.
func (c *Client) AddBackupLocator(ctx context.Context, elementID int64, data any) (*apiclient.Response, error) {
	return addBackupLocator.Call(ctx, c.d, apiclient.FormatID(elementID), nil, data)
}

// GenerateElementSuggestions asks the platform for alternative locators.
func (c *Client) GenerateElementSuggestions(ctx context.Context, elementID int64) (*apiclient.Response, error) {
	return generateElementSuggestions.Call(ctx, c.d, apiclient.FormatID(elementID), nil, nil)
}

// GetElementGroups returns a page of element groups; params carries filters and paging.
func (c *Client) GetElementGroups(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getElementGroups.Call(ctx, c.d, "", params, nil)
}

// CreateElementGroup creates an element group from data.
func (c *Client) CreateElementGroup(ctx context.Context, data any) (*apiclient.Response, error) {
	return createElementGroup.Call(ctx, c.d, "", nil, data)
}

// GetElementGroupDetail returns the element group with the given id.
func (c *Client) GetElementGroupDetail(ctx context.Context, groupID int64) (*apiclient.Response, error) {
	return getElementGroupDetail.Call(ctx, c.d, apiclient.FormatID(groupID), nil, nil)
}

// UpdateElementGroup patches an element group; data holds only the changed fields.
func (c *Client) UpdateElementGroup(ctx context.Context, groupID int64, data any) (*apiclient.Response, error) {
	return updateElementGroup.Call(ctx, c.d, apiclient.FormatID(groupID), nil, data)
}

// DeleteElementGroup deletes the element group.
func (c *Client) DeleteElementGroup(ctx context.Context, groupID int64) (*apiclient.Response, error) {
	return deleteElementGroup.Call(ctx, c.d, apiclient.FormatID(groupID), nil, nil)
}

// GetElementGroupTree returns the group hierarchy.
func (c *Client) GetElementGroupTree(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getElementGroupTree.Call(ctx, c.d, "", params, nil)
}

// GetPageObjects lists page objects. Filter and page with params.
func (c *Client) GetPageObjects(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getPageObjects.Call(ctx, c.d, "", params, nil)
}

// CreatePageObject creates a page object.
func (c *Client) CreatePageObject(ctx context.Context, data any) (*apiclient.Response, error) {
	return createPageObject.Call(ctx, c.d, "", nil, data)
}

// GetPageObjectDetail fetches one page object.
func (c *Client) GetPageObjectDetail(ctx context.Context, pageObjectID int64) (*apiclient.Response, error) {
	return getPageObjectDetail.Call(ctx, c.d, apiclient.FormatID(pageObjectID), nil, nil)
}

// UpdatePageObject updates the page object. Only the fields in data change.
func (c *Client) UpdatePageObject(ctx context.Context, pageObjectID int64, data any) (*apiclient.Response, error) {
	return updatePageObject.Call(ctx, c.d, apiclient.FormatID(pageObjectID), nil, data)
}

// DeletePageObject removes a page object.
func (c *Client) DeletePageObject(ctx context.Context, pageObjectID int64) (*apiclient.Response, error) {
	return deletePageObject.Call(ctx, c.d, apiclient.FormatID(pageObjectID), nil, nil)
}

// GeneratePageObjectCode renders the page object as source code. data selects the target language and framework.
func (c *Client) GeneratePageObjectCode(ctx context.Context, pageObjectID int64, data any) (*apiclient.Response, error) {
	return generatePageObjectCode.Call(ctx, c.d, apiclient.FormatID(pageObjectID), nil, data)
}

// AddElementToPageObject links an existing element to the page object.
func (c *Client) AddElementToPageObject(ctx context.Context, pageObjectID int64, data any) (*apiclient.Response, error) {
	return addElementToPageObject.Call(ctx, c.d, apiclient.FormatID(pageObjectID), nil, data)
}

// GetPageObjectElements lists the elements of a page object.
func (c *Client) GetPageObjectElements(ctx context.Context, pageObjectID int64) (*apiclient.Response, error) {
	return getPageObjectElements.Call(ctx, c.d, apiclient.FormatID(pageObjectID), nil, nil)
}

// GetPageObjectElementDetails lists page-object/element links. Filter with params.
func (c *Client) GetPageObjectElementDetails(ctx context.Context, params apiclient.Params) (*apiclient.Response, error) {
	return getPageObjectElementDetails.Call(ctx, c.d, "", params, nil)
}

// CreatePageObjectElement creates a page object element from data.
func (c *Client) CreatePageObjectElement(ctx context.Context, data any) (*apiclient.Response, error) {
	return createPageObjectElement.Call(ctx, c.d, "", nil, data)
}

func (c *Client) UpdatePageObjectElement(ctx context.Context, linkID int64, data any) (*apiclient.Response, error) {
	return updatePageObjectElement.Call(ctx, c.d, apiclient.FormatID(linkID), nil, data)
}

func (c *Client) DeletePageObjectElement(ctx context.Context, linkID int64) (*apiclient.Response, error) {
	return deletePageObjectElement.Call(ctx, c.d, apiclient.FormatID(linkID), nil, nil)
}
