package domain

// Mood 心情标签实体，种子数据固定，运行期只读
type Mood struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}
