package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// PublicPrefix 为静态文件路由前缀，返回给客户端的路径都以它开头
const PublicPrefix = "/uploads/"

// Disk 把上传文件写到本地目录，文件名随机
type Disk struct {
	Dir string
}

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{Dir: dir}, nil
}

// Save 写入 src，返回对外路径 /uploads/<name>
func (d *Disk) Save(originalName string, src io.Reader) (string, error) {
	// 读取前 3KB 供扩展名兜底嗅探，再拼回流里
	head := make([]byte, 3072)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = mimetype.Detect(head).Extension()
	}
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	f, err := os.OpenFile(filepath.Join(d.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, io.MultiReader(bytes.NewReader(head), src)); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return PublicPrefix + name, nil
}

// Owns 判断对外路径是否指向本目录下的文件
func (d *Disk) Owns(publicPath string) bool {
	_, ok := d.localPath(publicPath)
	return ok
}

// Remove 删除对外路径对应的文件；不是本地上传的路径直接忽略
func (d *Disk) Remove(publicPath string) error {
	p, ok := d.localPath(publicPath)
	if !ok {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (d *Disk) localPath(publicPath string) (string, bool) {
	if !strings.HasPrefix(publicPath, PublicPrefix) {
		return "", false
	}
	name := path.Base(path.Clean(publicPath))
	if name == "." || name == "/" || name != strings.TrimPrefix(publicPath, PublicPrefix) {
		return "", false
	}
	return filepath.Join(d.Dir, name), true
}
