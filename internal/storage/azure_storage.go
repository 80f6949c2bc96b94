package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// AzureStore uploads artifacts to an Azure Blob Storage container and
// returns their blob URLs.
type AzureStore struct {
	client     *azblob.Client
	serviceURL string
	container  string
}

// NewAzureStore creates a store for the given storage account and container
func NewAzureStore(accountName, accountKey, container string) (*AzureStore, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("azure client: %w", err)
	}

	return &AzureStore{client: client, serviceURL: serviceURL, container: container}, nil
}

// EnsureContainer creates the container if it does not exist yet
func (s *AzureStore) EnsureContainer(ctx context.Context) error {
	_, err := s.client.CreateContainer(ctx, s.container, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return fmt.Errorf("create container %q: %w", s.container, err)
	}
	return nil
}

// Put uploads data as blob name and returns its URL
func (s *AzureStore) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	_, err := s.client.UploadBuffer(ctx, s.container, name, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return BlobURL(s.serviceURL, s.container, name), nil
}

// BlobURL joins a service URL, container and blob name
func BlobURL(serviceURL, container, name string) string {
	return strings.TrimRight(serviceURL, "/") + "/" + container + "/" + strings.TrimLeft(name, "/")
}
