package api

import (
	"html/template"
	"log/slog"
	"net/http"
)

type indexData struct {
	ScriptModel string
	VideoModel  string
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
<title>AI Ad Generator</title>
<script src="https://cdn.tailwindcss.com"></script>
<style>
body { font-family: Inter, system-ui, -apple-system, Segoe UI, Roboto, sans-serif; }
.loader{border:6px solid #f3f3f3;border-top:6px solid #6366f1;border-radius:50%;width:48px;height:48px;animation:spin 1.2s linear infinite}
@keyframes spin{0%{transform:rotate(0)}100%{transform:rotate(360deg)}}
.image-upload-area{border:2px dashed #d1d5db;background:#f9fafb;border-radius:8px;transition:all .3s ease;cursor:pointer;min-height:200px}
.image-upload-area:hover,.image-upload-area.drag-over{border-color:#6366f1;background:#eef2ff}
.result-preview{width:100%;min-height:320px;background:#f3f4f6;border:2px dashed #d1d5db;display:flex;align-items:center;justify-content:center;overflow:hidden;border-radius:8px}
.result-preview video{max-width:100%;max-height:480px;object-fit:contain}
</style>
</head>
<body class="bg-gray-50 text-gray-800">
<div class="container mx-auto p-4 md:p-8 max-w-4xl">
<header class="text-center mb-8">
<h1 class="text-3xl md:text-4xl font-bold text-gray-900">AI Ad Generator</h1>
<p class="text-gray-600 mt-2">Upload a product photo and get a commercial script, then a video ad.</p>
<p class="text-sm text-indigo-600 mt-1">Script model: {{.ScriptModel}} / Video model: {{.VideoModel}}</p>
</header>
<main class="bg-white p-6 md:p-8 rounded-2xl shadow-lg">
<form id="ad-form">
<div id="image-upload-area" class="image-upload-area p-6 text-center mb-6">
<div id="upload-prompt">
<p class="text-lg font-medium text-gray-700 mb-2">Drag &amp; drop a product image</p>
<p class="text-sm text-gray-500">or click to choose a file (JPEG, PNG, GIF, WebP, up to 10MB)</p>
</div>
<div id="image-preview" class="hidden">
<img id="preview-img" src="" alt="Product preview" class="max-w-full max-h-48 object-contain mx-auto rounded-lg shadow-md">
<p id="image-name" class="mt-2 text-sm text-gray-600 font-medium"></p>
</div>
</div>
<input type="file" id="image-input" name="image" accept="image/*" class="hidden">
<label for="description" class="block text-lg font-semibold mb-2 text-gray-700">Product description (optional)</label>
<textarea id="description" name="description" rows="3" class="w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-indigo-500 focus:border-indigo-500" placeholder="e.g. wireless headphones with active noise cancelling"></textarea>
<div class="text-center mt-6">
<button type="submit" id="script-btn" class="bg-gradient-to-r from-indigo-500 to-blue-600 text-white font-bold py-3 px-10 rounded-full hover:shadow-xl transition-all text-lg">Generate Ad Script</button>
</div>
</form>

<div id="script-loading" class="hidden mt-8 flex flex-col items-center"><div class="loader"></div><p class="mt-3 text-gray-600">Writing your script...</p></div>
<div id="script-error" class="hidden mt-6 bg-red-100 border border-red-400 text-red-700 px-4 py-3 rounded-lg">
<p id="script-error-text"></p>
<div class="mt-3 flex gap-2"><button class="retry-script px-4 py-1 bg-red-600 text-white rounded-lg">Try again</button><button class="reset-btn px-4 py-1 border border-red-400 rounded-lg">Start over</button></div>
</div>

<section id="script-section" class="hidden mt-10">
<h2 id="script-title" class="text-2xl font-bold text-center text-gray-800"></h2>
<p id="script-tagline" class="text-center italic text-indigo-600 mb-6"></p>
<div id="scenes" class="space-y-4"></div>
<div class="text-center mt-8 flex justify-center gap-3">
<button id="video-btn" class="bg-gradient-to-r from-purple-500 to-indigo-600 text-white font-bold py-3 px-8 rounded-full hover:shadow-xl transition-all">Generate Video</button>
<button class="reset-btn px-6 py-2 text-sm rounded-lg border border-gray-300 text-gray-600 hover:bg-gray-50">Start over</button>
</div>
</section>

<section id="video-section" class="hidden mt-10">
<div id="video-display" class="result-preview"></div>
<div id="video-error" class="hidden mt-4 bg-red-100 border border-red-400 text-red-700 px-4 py-3 rounded-lg">
<p id="video-error-text"></p>
<button id="retry-video" class="mt-3 px-4 py-1 bg-red-600 text-white rounded-lg">Try again</button>
</div>
</section>
</main>
</div>
<script>
const $ = (id) => document.getElementById(id);
const imageInput = $('image-input');
const uploadArea = $('image-upload-area');
let selectedFile = null;
let stream = null;

uploadArea.addEventListener('click', () => imageInput.click());
uploadArea.addEventListener('dragover', (e) => { e.preventDefault(); uploadArea.classList.add('drag-over'); });
uploadArea.addEventListener('dragleave', () => uploadArea.classList.remove('drag-over'));
uploadArea.addEventListener('drop', (e) => {
    e.preventDefault();
    uploadArea.classList.remove('drag-over');
    if (e.dataTransfer.files.length > 0) { selectImage(e.dataTransfer.files[0]); }
});
imageInput.addEventListener('change', (e) => { if (e.target.files[0]) { selectImage(e.target.files[0]); } });

function selectImage(file) {
    if (!file.type.startsWith('image/')) { return; }
    selectedFile = file;
    const reader = new FileReader();
    reader.onload = (e) => {
        $('preview-img').src = e.target.result;
        $('image-name').textContent = file.name;
        $('upload-prompt').classList.add('hidden');
        $('image-preview').classList.remove('hidden');
    };
    reader.readAsDataURL(file);
}

async function post(url, body) {
    const res = await fetch(url, { method: 'POST', body: body, credentials: 'same-origin' });
    const data = await res.json();
    if (!res.ok) { return data.snapshot || { error: data }; }
    return data;
}

async function generateScript() {
    const form = new FormData();
    if (selectedFile) { form.append('image', selectedFile); }
    form.append('description', $('description').value);
    render({ scriptState: 'loading', videoState: 'idle', hasImage: true });
    const data = await post('/api/script', form);
    if (data.error) { showScriptError(data.error); return; }
    selectedFile = null;
    render(data);
}

async function generateVideo() {
    const data = await post('/api/video');
    render(data);
    follow();
}

async function reset(hard) {
    const data = await post('/api/reset' + (hard ? '?hard=true' : ''));
    if (hard) {
        selectedFile = null;
        imageInput.value = '';
        $('description').value = '';
        $('preview-img').src = '';
        $('upload-prompt').classList.remove('hidden');
        $('image-preview').classList.add('hidden');
    }
    render(data);
}

function follow() {
    if (stream) { return; }
    const proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    stream = new WebSocket(proto + location.host + '/ws/status');
    stream.onmessage = (e) => {
        const data = JSON.parse(e.data);
        render(data);
        if (data.videoState !== 'loading') { stream.close(); }
    };
    stream.onclose = () => { stream = null; };
}

function showScriptError(err) {
    $('script-loading').classList.add('hidden');
    $('script-error').classList.remove('hidden');
    $('script-error-text').textContent = err.error;
}

function render(s) {
    $('script-loading').classList.toggle('hidden', s.scriptState !== 'loading');
    $('script-btn').disabled = s.scriptState === 'loading';
    $('script-error').classList.toggle('hidden', !s.scriptError);
    if (s.scriptError) { $('script-error-text').textContent = s.scriptError.error; }

    const ready = s.scriptState === 'ready' && s.script;
    $('script-section').classList.toggle('hidden', !ready);
    $('video-section').classList.toggle('hidden', !ready || s.videoState === 'idle');
    if (!ready) { return; }

    $('script-title').textContent = s.script.title;
    $('script-tagline').textContent = s.script.tagline;
    const scenes = $('scenes');
    scenes.innerHTML = '';
    s.script.scenes.forEach((scene) => {
        const card = document.createElement('div');
        card.className = 'scene-card border border-gray-200 rounded-xl p-4 shadow-sm';
        const rows = [['Setting', scene.setting], ['Action', scene.action], ['Dialogue', scene.dialogue], ['Sound', scene.sound]];
        const title = document.createElement('h3');
        title.className = 'font-bold text-indigo-700 mb-2';
        title.textContent = 'Scene ' + scene.sceneNumber;
        card.appendChild(title);
        rows.forEach(([label, value]) => {
            const p = document.createElement('p');
            p.className = 'text-sm';
            p.innerHTML = '<span class="font-semibold"></span> ';
            p.firstChild.textContent = label + ':';
            p.appendChild(document.createTextNode(value));
            card.appendChild(p);
        });
        scenes.appendChild(card);
    });

    $('video-btn').disabled = s.videoState === 'loading';
    const display = $('video-display');
    $('video-error').classList.toggle('hidden', !s.videoError);
    if (s.videoState === 'loading') {
        display.innerHTML = '<div class="flex flex-col items-center"><div class="loader"></div><p id="video-status" class="mt-3 text-gray-600"></p></div>';
        $('video-status').textContent = s.videoStatus || '';
        follow();
    } else if (s.videoState === 'ready') {
        if (!display.querySelector('video')) {
            display.innerHTML = '<video controls autoplay></video>';
            display.querySelector('video').src = s.videoUrl;
        }
    } else if (s.videoError) {
        display.innerHTML = '';
        $('video-error-text').textContent = s.videoError.error;
    }
}

$('ad-form').addEventListener('submit', (e) => { e.preventDefault(); generateScript(); });
$('video-btn').addEventListener('click', generateVideo);
$('retry-video').addEventListener('click', generateVideo);
document.querySelectorAll('.retry-script').forEach((b) => b.addEventListener('click', async () => { await reset(false); generateScript(); }));
document.querySelectorAll('.reset-btn').forEach((b) => b.addEventListener('click', () => reset(true)));

fetch('/api/state', { credentials: 'same-origin' }).then((r) => r.json()).then((s) => {
    if (s.description) { $('description').value = s.description; }
    render(s);
});
</script>
</body>
</html>`))

func (h *AdHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	data := indexData{ScriptModel: h.scriptModel, VideoModel: h.videoModel}
	if err := indexTemplate.Execute(w, data); err != nil {
		slog.Error("Failed to render index page", "error", err)
	}
}
